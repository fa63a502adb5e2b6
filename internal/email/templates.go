package email

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

const (
	TemplateContactConfirmation = "contact_confirmation"
	TemplateContactNotification = "contact_notification"
)

// Встроенные шаблоны. A file named <name>.txt in the templates directory
// replaces the template of the same name.
var builtinTemplates = map[string]string{
	TemplateContactConfirmation + "_subject": `I received your message – {{.OwnerName}}`,
	TemplateContactConfirmation + "_body": `Dear {{.Name}},

Thank you for reaching out. I have received your message and will get back to you soon.

Best regards,
{{.OwnerName}}`,

	TemplateContactNotification + "_subject": `Portfolio contact: {{if .Subject}}{{.Subject}}{{else}}New message{{end}}`,
	TemplateContactNotification + "_body": `From: {{.Name}} <{{.Email}}>
Subject: {{if .Subject}}{{.Subject}}{{else}}(no subject){{end}}

{{.Message}}`,
}

var _ TemplateRenderer = (*TemplateManager)(nil)

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, src := range builtinTemplates {
		if err := tm.AddTemplate(name, src); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// RenderMessage renders <name>_subject and <name>_body.
func (tm *TemplateManager) RenderMessage(name string, data TemplateData) (subject, body string, err error) {
	subject, err = tm.Render(name+"_subject", data)
	if err != nil {
		return "", "", err
	}
	body, err = tm.Render(name+"_body", data)
	if err != nil {
		return "", "", err
	}
	return headerValue(subject), body, nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает *.txt шаблоны из директории. A missing directory
// is not an error.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	if dirPath == "" {
		return nil
	}
	if _, err := os.Stat(dirPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".txt") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".txt")
		if err := tm.AddTemplate(templateName, strings.TrimRight(string(content), "\n")); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
