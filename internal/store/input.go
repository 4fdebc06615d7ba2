package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// DefaultPlatforms is used when a submission names no platforms.
var DefaultPlatforms = []string{string(models.PlatformInstagram), string(models.PlatformFacebook)}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("craft", func(fl validator.FieldLevel) bool {
			return models.ParseCraftType(fl.Field().String()) != models.CraftUnknown
		})
		_ = validate.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			_, ok := models.ParsePlatform(fl.Field().String())
			return ok
		})
	})
	return validate
}

// ProfileInput is the submission for a new profile.
type ProfileInput struct {
	Name            string   `json:"name"                   binding:"required" validate:"required,max=120"`
	Location        string   `json:"location"               binding:"required" validate:"required,max=120"`
	Specialization  string   `json:"specialization"         binding:"required" validate:"required,craft"`
	ExperienceYears int      `json:"experience_years"       validate:"gte=0,lte=80"`
	SignatureStyle  string   `json:"signature_style"        validate:"max=500"`
	TargetAudience  string   `json:"target_audience"        validate:"max=500"`
	Platforms       []string `json:"social_media_platforms" validate:"required,min=1,dive,platform"`
}

func (in ProfileInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError("name", "is required")
	}
	return translate(getValidator().Struct(in))
}

// ProfileUpdate carries the fields an explicit update may change.
type ProfileUpdate struct {
	Name            *string   `json:"name"                   validate:"omitempty,min=1,max=120"`
	Location        *string   `json:"location"               validate:"omitempty,max=120"`
	Specialization  *string   `json:"specialization"         validate:"omitempty,craft"`
	ExperienceYears *int      `json:"experience_years"       validate:"omitempty,gte=0,lte=80"`
	SignatureStyle  *string   `json:"signature_style"        validate:"omitempty,max=500"`
	TargetAudience  *string   `json:"target_audience"        validate:"omitempty,max=500"`
	Platforms       *[]string `json:"social_media_platforms" validate:"omitempty,min=1,dive,platform"`
}

func (in ProfileUpdate) validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return models.NewValidationError("name", "must not be empty")
	}
	return translate(getValidator().Struct(in))
}

func (in ProfileUpdate) apply(p *models.ArtisanProfile) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Specialization != nil {
		p.Specialization = models.ParseCraftType(*in.Specialization)
	}
	if in.ExperienceYears != nil {
		p.ExperienceYears = *in.ExperienceYears
	}
	if in.SignatureStyle != nil {
		p.SignatureStyle = strings.TrimSpace(*in.SignatureStyle)
	}
	if in.TargetAudience != nil {
		p.TargetAudience = strings.TrimSpace(*in.TargetAudience)
	}
	if in.Platforms != nil {
		p.Platforms = parsePlatforms(*in.Platforms)
	}
}

// parsePlatforms assumes validated input and drops duplicates, keeping first occurrence.
func parsePlatforms(raw []string) []models.Platform {
	out := make([]models.Platform, 0, len(raw))
	seen := make(map[models.Platform]bool, len(raw))
	for _, r := range raw {
		p, ok := models.ParsePlatform(r)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Field:   jsonField(fe.StructField()),
			Message: message(fe),
		})
	}
	return models.NewValidationErrors(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "craft":
		return fmt.Sprintf("unknown specialization %q", fe.Value())
	case "platform":
		return fmt.Sprintf("unknown platform %q", fe.Value())
	case "min":
		return fmt.Sprintf("must have at least %s item(s)", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

var jsonFields = map[string]string{
	"Name":            "name",
	"Location":        "location",
	"Specialization":  "specialization",
	"ExperienceYears": "experience_years",
	"SignatureStyle":  "signature_style",
	"TargetAudience":  "target_audience",
	"Platforms":       "social_media_platforms",
}

func jsonField(structField string) string {
	// dive errors come back as Platforms[1]
	base, _, _ := strings.Cut(structField, "[")
	if f, ok := jsonFields[base]; ok {
		return f
	}
	return structField
}
