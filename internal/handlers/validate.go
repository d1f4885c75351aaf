// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"privatespace/internal/design"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator. Field names in messages
// come from the json tag so they match what the client sent.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// validateRequest checks a request struct and returns the first problem as
// a user-facing message, or "" when the struct is valid.
func validateRequest(req any) string {
	err := validatorInstance().Struct(req)
	if err == nil {
		return ""
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "Invalid request."
	}
	return messageFor(ves[0])
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters).", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short (min %s characters).", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "alphanum":
		return fmt.Sprintf("%s may only contain letters and digits.", field)
	case "len", "numeric":
		return fmt.Sprintf("%s must be a 6 digit code.", field)
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	OTP      string `json:"otp" form:"otp" validate:"omitempty,len=6,numeric"`
}

type codeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type journalRequest struct {
	Title    string          `json:"title" validate:"required,max=300"`
	Content  string          `json:"content" validate:"max=100000"`
	IsPublic bool            `json:"is_public"`
	Design   *design.Options `json:"design_config"`
}

// journalPatch carries a partial update: only non-nil fields are applied.
type journalPatch struct {
	Title    *string         `json:"title" validate:"omitnil,min=1,max=300"`
	Content  *string         `json:"content" validate:"omitnil,max=100000"`
	IsPublic *bool           `json:"is_public"`
	Design   *design.Options `json:"design_config"`
}

type blogRequest struct {
	Title   string          `json:"title" validate:"required,max=300"`
	Content string          `json:"content" validate:"max=100000"`
	Tags    *string         `json:"tags" validate:"omitnil,max=500"`
	Design  *design.Options `json:"design_config"`
}

type blogPatch struct {
	Title   *string         `json:"title" validate:"omitnil,min=1,max=300"`
	Content *string         `json:"content" validate:"omitnil,max=100000"`
	Tags    *string         `json:"tags" validate:"omitnil,max=500"`
	Design  *design.Options `json:"design_config"`
}

type rankRequest struct {
	RankDelta int `json:"rank_delta"`
}

type sectionRequest struct {
	SectionType string          `json:"section_type" validate:"max=50"`
	Title       string          `json:"title" validate:"required,max=300"`
	Content     string          `json:"content" validate:"max=100000"`
	Design      *design.Options `json:"design_config"`
	Order       *int            `json:"order"`
}

type sectionPatch struct {
	SectionType *string         `json:"section_type" validate:"omitnil,max=50"`
	Title       *string         `json:"title" validate:"omitnil,min=1,max=300"`
	Content     *string         `json:"content" validate:"omitnil,max=100000"`
	Design      *design.Options `json:"design_config"`
	Order       *int            `json:"order"`
}
