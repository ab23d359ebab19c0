package internal

import (
	"html/template"
	"io"
	"vinti4/entity"
)

var formTemplate = template.Must(template.New("form").Parse(`<html>
<head><title>Vinti4Net</title></head>
<body onload="document.forms[0].submit()">
<form action="{{.PostUrl}}" method="post">
{{range .Fields}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{end}}</form>
</body>
</html>
`))

type formField struct {
	Name  string
	Value string
}

// RenderForm writes an auto-submitting HTML form that posts the fields to the gateway.
func RenderForm(w io.Writer, form *entity.PaymentForm) error {
	fields := make([]formField, 0, len(form.Order))
	for _, name := range form.Order {
		fields = append(fields, formField{Name: name, Value: form.Fields[name]})
	}
	return formTemplate.Execute(w, struct {
		PostUrl template.URL
		Fields  []formField
	}{
		PostUrl: template.URL(form.PostUrl),
		Fields:  fields,
	})
}
