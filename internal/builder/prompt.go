package builder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
)

var hexPrefixRe = regexp.MustCompile(`#\w+ `)

const promptSuffix = "Include glossy paint, realistic reflections, detailed textures, " +
	"studio lighting, realistic shadows, vibrant colors, ultra-detailed, " +
	"photorealistic environment, dynamic angle, 8K resolution, " +
	"award-winning car photography style."

// BuildPrompt renders the image-generation prompt for the session. The
// color pick leads the description; other options trail as features.
func BuildPrompt(session *Session) (string, error) {
	if !session.ReadyForPreview() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "select a car model and year first")
	}

	core := fmt.Sprintf("%s %s %s", session.Year, session.BrandName, session.ModelName)

	colorPart := ""
	if color := session.SelectedColor(); color != nil {
		// Custom colors carry a hex prefix in the name; strip it so the
		// prompt reads naturally.
		detail := strings.TrimSpace(hexPrefixRe.ReplaceAllString(color.Name, ""))
		if detail != "" {
			colorPart = fmt.Sprintf(" in a stunning, high-gloss **%s** finish", detail)
		}
	}

	features := make([]string, 0, len(session.Options))
	for _, option := range session.Options {
		if option.Category == enums.OptionCategoryColor {
			continue
		}
		features = append(features, option.Name)
	}
	featurePart := ""
	if len(features) > 0 {
		featurePart = fmt.Sprintf(" with **%s**", strings.Join(features, ", "))
	}

	prompt := fmt.Sprintf(
		"A hyper-realistic, cinematic, high-resolution image of a %s%s%s. %s",
		core, colorPart, featurePart, promptSuffix,
	)
	return prompt, nil
}
