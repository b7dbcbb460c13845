package dialog

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pixil98/go-rpg/internal/game"
)

// Dialog lines wrap to the chatbox width.
const lineWidth = 60

var (
	templateFuncs = sprig.TxtFuncMap()
	titleCaser    = cases.Title(language.English)
)

// textData is what dialog text templates render against.
type textData struct {
	Player string
}

// expandText runs s through template expansion with the player's data
// and wraps it to the chatbox width. A malformed template falls back to
// the literal text; dialog content errors should never fault a script.
func expandText(s string, p *game.Player) string {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(s)
	if err != nil {
		return wordwrap.String(s, lineWidth)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, &textData{Player: titleCaser.String(p.Name())})
	if err != nil {
		return wordwrap.String(s, lineWidth)
	}

	return wordwrap.String(buf.String(), lineWidth)
}

// displayName title-cases a definition name for dialog headers.
func displayName(s string) string {
	return titleCaser.String(s)
}
