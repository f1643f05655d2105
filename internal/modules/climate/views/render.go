package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var welcomeTmpl *template.Template

// loadTemplatesFromFS parses the welcome page from dir inside fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	welcomeTmpl, err = template.ParseFS(sub, "*.html")
	return err
}

// LoadTemplates parses the embedded templates. Call it once at startup and
// refuse to serve if it fails.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Route is one entry in the welcome page route list.
type Route struct {
	Pattern     string
	Description string
	Example     string
}

// WelcomeData is the view model for the welcome page. BaseURL is the
// scheme and host the example links point at.
type WelcomeData struct {
	Oldest  string
	Latest  string
	BaseURL string
	Routes  []Route
}

// NewWelcomeData lists every API route with an example built from the
// dataset's own bounds, so each link resolves to data.
func NewWelcomeData(oldest, latest, baseURL string) WelcomeData {
	return WelcomeData{
		Oldest:  oldest,
		Latest:  latest,
		BaseURL: baseURL,
		Routes: []Route{
			{
				Pattern:     "/api/v1.0/precipitation",
				Description: "Returns a json dictionary representation of dates with precipitation values",
				Example:     "/api/v1.0/precipitation",
			},
			{
				Pattern:     "/api/v1.0/stations",
				Description: "Returns a json list of Hawaii weather stations IDs",
				Example:     "/api/v1.0/stations",
			},
			{
				Pattern:     "/api/v1.0/tobs",
				Description: "Returns a json list of Temp. Observations for the previous year from last data point",
				Example:     "/api/v1.0/tobs",
			},
			{
				Pattern:     "/api/v1.0/YYYY-MM-DD",
				Description: "Returns a json list of the min, avg, and max temps for a range of dates greater than or equal to the start date",
				Example:     "/api/v1.0/" + oldest,
			},
			{
				Pattern:     "/api/v1.0/YYYY-MM-DD/YYYY-MM-DD",
				Description: "Returns a json list of the min, avg, and max temps for a range of dates greater than or equal to the start date and less than or equal to the end date",
				Example:     "/api/v1.0/" + oldest + "/" + latest,
			},
			{
				Pattern:     "/api/v1.0/text/YYYY-MM-DD",
				Description: "Returns a human-readable json printout of the min, avg, and max temps for a range of dates greater than or equal to the start date",
				Example:     "/api/v1.0/text/" + oldest,
			},
			{
				Pattern:     "/api/v1.0/text/YYYY-MM-DD/YYYY-MM-DD",
				Description: "Returns a human-readable json printout of the min, avg, and max temps for a range of dates greater than or equal to the start date and less than or equal to the end date",
				Example:     "/api/v1.0/text/" + oldest + "/" + latest,
			},
		},
	}
}

func RenderWelcome(w io.Writer, data WelcomeData) error {
	if welcomeTmpl == nil {
		return errors.New("welcome template not loaded: call views.LoadTemplates during startup")
	}
	return welcomeTmpl.ExecuteTemplate(w, "welcome.html", data)
}
