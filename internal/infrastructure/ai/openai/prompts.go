package openai

import (
	"fmt"
	"strings"

	"github.com/kookt/v1/internal/domain/recipe"
)

// systemPrompt instructs the model to answer with one JSON object
// matching the recipe schema exactly. Dietary restrictions and
// allergens passed in the user prompt are hard constraints.
func systemPrompt() string {
	return `Tu es un chef cuisinier expert qui cree des recettes adaptees aux ingredients disponibles.

CRITIQUE : reponds UNIQUEMENT avec un objet JSON valide au format exact ci-dessous. Aucun texte explicatif, aucun markdown, rien en dehors du JSON.

Format JSON requis :
{
  "title": "Nom de la recette",
  "description": "Breve description du plat",
  "prepTime": 15,
  "cookTime": 25,
  "servings": 2,
  "difficulty": "facile|moyen|difficile",
  "cuisine": "type de cuisine",
  "ingredients": [
    {
      "name": "nom de l'ingredient",
      "quantity": 1.5,
      "unit": "unite",
      "category": "fruits-legumes|viandes-poissons|produits-laitiers|cereales-feculents|condiments-epices|huiles-graisses|autres",
      "available": true,
      "estimatedPrice": 2.5
    }
  ],
  "steps": [
    {
      "order": 1,
      "instruction": "Instruction detaillee",
      "duration": 5,
      "tips": "Astuce optionnelle"
    }
  ],
  "nutrition": {
    "calories": 350,
    "protein": 25.0,
    "carbs": 30.0,
    "fat": 15.0,
    "fiber": 5.0
  },
  "tags": ["tag1", "tag2"],
  "dietary": ["vegetarien"],
  "allergens": [],
  "estimatedCost": {
    "total": 8.5,
    "perServing": 4.25
  },
  "substitutions": [
    {
      "originalIngredient": "ingredient manquant",
      "alternatives": ["alternative 1", "alternative 2"],
      "reason": "raison de la substitution"
    }
  ]
}

Les valeurs de "dietary" doivent appartenir a : vegetarien, vegan, sans-gluten, sans-lactose, halal, casher, paleo, keto, low-carb, high-protein.

Privilegie les ingredients disponibles. Pour tout ingredient supplementaire, signale-le avec available: false et propose une substitution.`
}

// generationPrompt renders the request into a deterministic
// instruction block. Restrictions and allergens are must-not-violate.
func generationPrompt(req *recipe.GenerationRequest) string {
	var b strings.Builder

	b.WriteString("Cree une recette avec ces ingredients disponibles : ")
	b.WriteString(strings.Join(req.Ingredients, ", "))

	if len(req.DietaryRestrictions) > 0 {
		tags := make([]string, len(req.DietaryRestrictions))
		for i, t := range req.DietaryRestrictions {
			tags[i] = string(t)
		}
		b.WriteString("\n\nCONTRAINTES ABSOLUES (a respecter imperativement) :")
		b.WriteString("\n- Regimes : ")
		b.WriteString(strings.Join(tags, ", "))
	}
	if len(req.Allergens) > 0 {
		if len(req.DietaryRestrictions) == 0 {
			b.WriteString("\n\nCONTRAINTES ABSOLUES (a respecter imperativement) :")
		}
		b.WriteString("\n- Allergenes a exclure totalement : ")
		b.WriteString(strings.Join(req.Allergens, ", "))
	}

	fmt.Fprintf(&b, "\n\nNombre de portions : %d", req.Servings)
	fmt.Fprintf(&b, "\nBudget : %s", req.BudgetLevel)

	if req.MaxTime > 0 {
		fmt.Fprintf(&b, "\nTemps total maximum : %d minutes", req.MaxTime)
	}
	if req.Cuisine != "" {
		fmt.Fprintf(&b, "\nCuisine souhaitee : %s", req.Cuisine)
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&b, "\nDifficulte souhaitee : %s", req.Difficulty)
	}
	if len(req.Goals) > 0 {
		fmt.Fprintf(&b, "\nObjectifs : %s", strings.Join(req.Goals, ", "))
	}

	return b.String()
}

// improvementPrompt seeds the model with the existing recipe JSON and
// the user's feedback.
func improvementPrompt(recipeJSON, feedback string) string {
	return fmt.Sprintf(`Voici une recette existante au format JSON :

%s

Ameliore cette recette selon ce retour utilisateur : %s

Reponds avec la recette complete amelioree au meme format JSON. Conserve le titre sauf si le retour demande de le changer.`, recipeJSON, feedback)
}

// suggestionSystemPrompt asks for a JSON object so the response stays
// compatible with the json_object response format.
func suggestionSystemPrompt() string {
	return `Tu es un assistant culinaire. Reponds UNIQUEMENT avec un objet JSON contenant une cle "suggestions" listant des noms d'ingredients en francais, sans texte autour. Exemple : {"suggestions": ["tomate", "thym"]}`
}

func suggestionPrompt(partial string, limit int) string {
	return fmt.Sprintf("Propose au maximum %d ingredients courants dont le nom commence par %q.", limit, partial)
}
