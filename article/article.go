// Package article models the CMS export consumed by the converter: an HTML
// body file accompanied by a small metadata sidecar.
package article

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"anfc/misc"
)

// Envelope is one article as exported by the CMS.
type Envelope struct {
	Identifier string    `yaml:"identifier" json:"identifier"`
	Title      string    `yaml:"title" json:"title"`
	Excerpt    string    `yaml:"excerpt" json:"excerpt"`
	Authors    []string  `yaml:"authors" json:"authors"`
	Published  time.Time `yaml:"published" json:"published"`
	Modified   time.Time `yaml:"modified" json:"modified"`
	Slug       string    `yaml:"slug" json:"slug"`
	Canonical  string    `yaml:"canonical" json:"canonical"`
	Language   string    `yaml:"language" json:"language"`
	Cover      string    `yaml:"cover" json:"cover"`
	Thumbnail  string    `yaml:"thumbnail" json:"thumbnail"`

	// HTML is the article body, read from the companion file.
	HTML string `yaml:"-" json:"-"`
}

// sidecar extensions probed next to the HTML file, in order.
var sidecarExts = []string{".yaml", ".yml", ".json"}

// Load reads the article HTML file at path and its metadata sidecar. A
// missing sidecar is not an error, the envelope then carries defaults
// derived from the file name.
func Load(path string) (*Envelope, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read article body: %w", err)
	}

	env := &Envelope{HTML: string(body)}

	base := misc.StripExt(path)
	for _, ext := range sidecarExts {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("unable to read article sidecar: %w", err)
		}
		if err := unmarshalSidecar(data, ext, env); err != nil {
			return nil, fmt.Errorf("unable to parse article sidecar %q: %w", base+ext, err)
		}
		break
	}

	env.fillDefaults(path)
	return env, nil
}

func unmarshalSidecar(data []byte, ext string, env *Envelope) error {
	if ext == ".json" {
		d := json.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		return d.Decode(env)
	}
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	return d.Decode(env)
}

func (e *Envelope) fillDefaults(path string) {
	if e.Identifier == "" {
		e.Identifier = uuid.NewString()
	}
	if e.Title == "" {
		name := misc.StripExt(path)
		if i := strings.LastIndexAny(name, `/\`); i >= 0 {
			name = name[i+1:]
		}
		e.Title = name
	}
	if e.Language == "" {
		e.Language = "en"
	}
	if e.Modified.IsZero() {
		e.Modified = e.Published
	}
}

// Byline joins the author list the way a byline renders it.
func (e *Envelope) Byline() string {
	switch len(e.Authors) {
	case 0:
		return ""
	case 1:
		return e.Authors[0]
	default:
		return strings.Join(e.Authors[:len(e.Authors)-1], ", ") + " and " + e.Authors[len(e.Authors)-1]
	}
}
