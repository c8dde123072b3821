package candidate

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID                 string    `json:"id"`
	UID                string    `json:"uid,omitempty"` // user account link, when self-registered
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Age                int       `json:"age"`
	ExperienceYears    int       `json:"experience_years"`
	PreviousExperience string    `json:"previous_experience,omitempty"`
	Photo              string    `json:"photo,omitempty"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("candidate not found")

type CreateCandidateRequest struct {
	UID                string `json:"uid"`
	Name               string `json:"name" binding:"required,min=2,max=120"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required,min=5,max=30"`
	Age                int    `json:"age" binding:"required,min=16,max=99"`
	ExperienceYears    int    `json:"experience_years" binding:"min=0,max=80"`
	PreviousExperience string `json:"previous_experience" binding:"omitempty,max=1000"`
	Photo              string `json:"photo" binding:"omitempty,url"`
}

// a full update payload; status changes go through the pipeline endpoints.
type UpdateCandidateRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=120"`
	Phone              string `json:"phone" binding:"required,min=5,max=30"`
	Age                int    `json:"age" binding:"required,min=16,max=99"`
	ExperienceYears    int    `json:"experience_years" binding:"min=0,max=80"`
	PreviousExperience string `json:"previous_experience" binding:"omitempty,max=1000"`
}

type ListCandidatesFilter struct {
	Status *Status
	Query  *string
	Limit  int
	Offset int
}

// A factory to build a Candidate from the incoming DTO

func NewFromCreateRequest(req CreateCandidateRequest) Candidate {
	now := time.Now().UTC()
	return Candidate{
		ID:                 uuid.NewString(),
		UID:                req.UID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Age:                req.Age,
		ExperienceYears:    req.ExperienceYears,
		PreviousExperience: req.PreviousExperience,
		Photo:              req.Photo,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
