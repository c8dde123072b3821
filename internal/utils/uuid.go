package utils

import "github.com/google/uuid"

// IsUUID reports whether s parses as a UUID. Path params are validated up
// front so repo queries never see garbage ids.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
