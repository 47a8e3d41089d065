package aur

import (
	"net/mail"
	"net/url"
	"strconv"
	"unicode/utf8"
)

// FieldKind selects the input element a form field renders as.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldCheckbox FieldKind = "checkbox"
)

// Field is one editable entry in a form: a label, the state needed to render
// its input, and any validation errors from the last bind.
type Field struct {
	// Name is the input's name attribute.
	Name string

	// Label is the untranslated label text shown next to the input.
	Label string

	Kind FieldKind

	// Value is the current input value for text-like fields.
	Value string

	// Checked is the current state for checkbox fields.
	Checked bool

	Required  bool
	MaxLength int

	// Errors holds the validation messages for this field, rendered
	// directly beneath it. Empty means the field validated.
	Errors []string
}

// IsCheckbox reports whether the field renders as a checkbox, which has
// different value semantics from text-like inputs.
func (f Field) IsCheckbox() bool {
	return f.Kind == FieldCheckbox
}

// AccountForm is the account-details form on the profile page: an ordered
// sequence of fields, bound from posted values and validated before being
// applied back onto the user.
type AccountForm struct {
	Fields []Field
}

// NewAccountForm builds the form pre-filled from the user's current account
// details.
func NewAccountForm(user User) *AccountForm {
	return &AccountForm{
		Fields: []Field{
			{
				Name:     "email",
				Label:    "Email address",
				Kind:     FieldEmail,
				Value:    user.Email,
				Required: true,
			},
			{
				Name:      "real_name",
				Label:     "Real name",
				Kind:      FieldText,
				Value:     user.RealName,
				MaxLength: 100,
			},
			{
				Name:    "notify",
				Label:   "Notify me of package updates",
				Kind:    FieldCheckbox,
				Checked: user.Notify,
			},
		},
	}
}

// Field returns the named field, or nil if the form has no such field.
func (f *AccountForm) Field(name string) *Field {
	for pos := range f.Fields {
		if f.Fields[pos].Name == name {
			return &f.Fields[pos]
		}
	}
	return nil
}

// Bind overwrites the form's values with the posted ones. Checkboxes follow
// HTML form semantics: absent means unchecked.
func (f *AccountForm) Bind(values url.Values) {
	for pos := range f.Fields {
		field := &f.Fields[pos]
		if field.Kind == FieldCheckbox {
			field.Checked = values.Get(field.Name) != ""
			continue
		}
		field.Value = values.Get(field.Name)
	}
}

// Validate checks every field, recording messages on the fields that fail.
// It reports whether the whole form is valid.
func (f *AccountForm) Validate() bool {
	valid := true
	for pos := range f.Fields {
		field := &f.Fields[pos]
		field.Errors = nil
		if field.Kind == FieldCheckbox {
			continue
		}
		if field.Required && field.Value == "" {
			field.Errors = append(field.Errors, "This field is required.")
		}
		if field.Kind == FieldEmail && field.Value != "" {
			if _, err := mail.ParseAddress(field.Value); err != nil {
				field.Errors = append(field.Errors, "Enter a valid email address.")
			}
		}
		// MaxLength counts characters, not bytes
		if field.MaxLength > 0 && utf8.RuneCountInString(field.Value) > field.MaxLength {
			field.Errors = append(field.Errors,
				"Ensure this value has at most "+strconv.Itoa(field.MaxLength)+" characters.")
		}
		if len(field.Errors) > 0 {
			valid = false
		}
	}
	return valid
}

// Apply copies the bound values onto the user. Call it only after Validate
// reports the form valid.
func (f *AccountForm) Apply(user *User) {
	if field := f.Field("email"); field != nil {
		user.Email = field.Value
	}
	if field := f.Field("real_name"); field != nil {
		user.RealName = field.Value
	}
	if field := f.Field("notify"); field != nil {
		user.Notify = field.Checked
	}
}
