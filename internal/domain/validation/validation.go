// Package validation provides schema validators for the domain types.
// Each validator either accepts the value or fails with an aggregated
// list of field-level violations. Validators are pure; they gate AI
// output and imported data through the same rules as hand-authored
// values.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/domain/user"
	apperrors "github.com/kookt/v1/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return recipe.Difficulty(fl.Field().String()).Valid()
	})
	v.RegisterValidation("dietary", func(fl validator.FieldLevel) bool {
		return recipe.DietaryTag(fl.Field().String()).Valid()
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return recipe.IngredientCategory(fl.Field().String()).Valid()
	})
	v.RegisterValidation("budget_level", func(fl validator.FieldLevel) bool {
		return recipe.BudgetLevel(fl.Field().String()).Valid()
	})
	v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		return user.SkillLevel(fl.Field().String()).Valid()
	})
	v.RegisterValidation("available_time", func(fl validator.FieldLevel) bool {
		return user.AvailableTime(fl.Field().String()).Valid()
	})

	v.RegisterStructValidation(recipeStructLevel, recipe.Recipe{})

	return v
}

// recipeStructLevel enforces the cross-field recipe invariants that
// single-field tags cannot express.
func recipeStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(recipe.Recipe)

	if r.TotalTime != r.PrepTime+r.CookTime {
		sl.ReportError(r.TotalTime, "TotalTime", "totalTime", "totaltime_sum", "")
	}

	seen := make(map[int]bool, len(r.Steps))
	for i, step := range r.Steps {
		if step.Order != i+1 || seen[step.Order] {
			sl.ReportError(r.Steps, "Steps", "steps", "step_order", "")
			return
		}
		seen[step.Order] = true
	}
}

// ValidateRecipe checks a recipe against the full schema
func ValidateRecipe(r *recipe.Recipe) error {
	return run(validate.Struct(r))
}

// ValidateIngredient checks a standalone ingredient
func ValidateIngredient(i *recipe.Ingredient) error {
	return run(validate.Struct(i))
}

// ValidateGenerationRequest checks a generation request before it
// reaches the pipeline
func ValidateGenerationRequest(req *recipe.GenerationRequest) error {
	return run(validate.Struct(req))
}

// ValidateShoppingList checks a shopping list and all its items
func ValidateShoppingList(l *shopping.List) error {
	return run(validate.Struct(l))
}

// ValidatePreferences checks user preferences
func ValidatePreferences(p *user.Preferences) error {
	return run(validate.Struct(p))
}

// ValidateProfile checks a full user profile
func ValidateProfile(p *user.Profile) error {
	return run(validate.Struct(p))
}

// run converts validator output into a single aggregated AppError
// carrying every violated field constraint.
func run(err error) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, "validation failed")
	}

	fields := make([]apperrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.ValidationError{
			Field:   fieldPath(fe),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}

	return apperrors.NewValidationErrors(fields)
}

// fieldPath strips the top-level struct name so paths read like
// "Ingredients[0].Quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	path := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", path, fe.Param())
	case "difficulty":
		return fmt.Sprintf("%s must be one of facile, moyen, difficile", path)
	case "dietary":
		return fmt.Sprintf("%s is not a recognized dietary tag", path)
	case "category":
		return fmt.Sprintf("%s is not a recognized ingredient category", path)
	case "budget_level":
		return fmt.Sprintf("%s must be one of economique, moyen, eleve", path)
	case "skill_level":
		return fmt.Sprintf("%s must be one of debutant, intermediaire, avance", path)
	case "available_time":
		return fmt.Sprintf("%s must be one of rapide, moyen, long", path)
	case "totaltime_sum":
		return "totalTime must equal prepTime + cookTime"
	case "step_order":
		return "steps must be numbered sequentially from 1 with unique order values"
	default:
		return fmt.Sprintf("%s failed the %s constraint", path, fe.Tag())
	}
}
