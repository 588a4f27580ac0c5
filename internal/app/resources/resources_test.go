package resources_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/resources"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
)

func renderCascade(t *testing.T, vm shared.CascadeVM) string {
	t.Helper()
	tmpl, err := template.ParseFS(resources.FS, "templates/cascade.gohtml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "cascade_selects", vm); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return b.String()
}

func TestCascadeSelects_LoadFailureNotice(t *testing.T) {
	vm := shared.DisabledCascade(shared.DepthParish, shared.ScopeForm, "parish-cascade")
	vm.Notice = &notify.Message{Level: notify.Error, Text: "Unable to load reference data."}

	out := renderCascade(t, vm)
	for _, want := range []string{
		`hx-swap-oob="beforeend:#notices"`,
		`class="notice notice-error"`,
		`data-dismiss-after="7000"`,
		"Unable to load reference data.",
		`name="state_id" disabled`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCascadeSelects_NoNoticeByDefault(t *testing.T) {
	out := renderCascade(t, shared.DisabledCascade(shared.DepthState, shared.ScopeFilter, "state-filter"))
	if strings.Contains(out, "hx-swap-oob") {
		t.Errorf("unexpected notice:\n%s", out)
	}
}
