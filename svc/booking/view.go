package booking

import "github.com/himtrails/tourbook/pkg/formfield"

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the form-level message under the submit button.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
	Key     string     `json:"key"`
}

// Notice is the transient message shown after a card is picked. Fading is
// set for the last moments before it is removed.
type Notice struct {
	Message string `json:"message"`
	Fading  bool   `json:"fading"`
}

// FieldView is the render state of one field. Message is empty unless an
// error is on display; Key is its translation key.
type FieldView struct {
	Name    string          `json:"name"`
	Value   string          `json:"value"`
	State   formfield.State `json:"state"`
	Message string          `json:"message,omitempty"`
	Key     string          `json:"key,omitempty"`
	Min     string          `json:"min,omitempty"`
}

// View is a snapshot of everything the page shows for a form.
type View struct {
	Fields     []FieldView `json:"fields"`
	Banner     *Banner     `json:"banner,omitempty"`
	Notice     *Notice     `json:"notice,omitempty"`
	Status     Status      `json:"status"`
	Focus      string      `json:"focus,omitempty"`
	Submitting bool        `json:"submitting"`
	Reference  string      `json:"reference,omitempty"`
}

// Field returns the view of the named field.
func (v View) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}
