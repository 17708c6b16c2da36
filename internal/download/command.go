package download

import (
	"strings"

	"github.com/raphi011/dlcmd/internal/registry"
)

// Placeholders recognized in command templates.
const (
	PlaceholderRef     = "${ref}"
	PlaceholderURL     = "${url}"
	PlaceholderProject = "${project}"
)

// Command renders download instructions.
type Command interface {
	// Command returns the instructions for downloading ref of project over
	// scheme. ok is false if the command does not apply to project.
	Command(scheme Scheme, project, ref string) (cmd string, ok bool)
}

// Expand substitutes the placeholders of template in a single pass.
func Expand(template, ref, url, project string) string {
	return strings.NewReplacer(
		PlaceholderRef, ref,
		PlaceholderURL, url,
		PlaceholderProject, project,
	).Replace(template)
}

// DisplayName is the name a configured command is shown under: dashes
// become spaces.
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "-", " ")
}

// templateCommand is a configured command bound to one project.
type templateCommand struct {
	project  string
	template string
}

// NewTemplateCommand returns a command that only applies to project.
func NewTemplateCommand(project, template string) Command {
	return templateCommand{project: project, template: template}
}

func (c templateCommand) Command(scheme Scheme, project, ref string) (string, bool) {
	if project != c.project {
		return "", false
	}
	return Expand(c.template, ref, scheme.URL(project), c.project), true
}

// Rendered is one command rendered for a project, ref and scheme.
type Rendered struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Scheme  string `json:"scheme"`
	Command string `json:"command"`
}

// Render asks every registered command for instructions for project and ref
// over each scheme, skipping commands that do not apply.
func Render(commands *registry.Map[Command], schemes []Scheme, project, ref string) []Rendered {
	var out []Rendered
	for _, e := range commands.Entries() {
		c := e.Provider()
		for _, s := range schemes {
			text, ok := c.Command(s, project, ref)
			if !ok {
				continue
			}
			out = append(out, Rendered{
				Group:   e.PluginName,
				Name:    e.ExportName,
				Scheme:  s.Name(),
				Command: text,
			})
		}
	}
	return out
}
