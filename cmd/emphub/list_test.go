package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/model"
)

func init() {
	color.NoColor = true
}

func TestPrintCollection_Allocations(t *testing.T) {
	client, err := api.NewClient("http://127.0.0.1:1/api")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	dash := dashboard.New(model.User{ID: 7}, client)
	dash.Reload(context.Background(), dashboard.Allocations)

	var buf bytes.Buffer
	printCollection(&buf, dash, dashboard.Allocations)
	out := buf.String()
	for _, want := range []string{"PROJECT", "Project Alpha", "Tech Lead", "80%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	dash.SetQuery("lead")
	buf.Reset()
	printCollection(&buf, dash, dashboard.Allocations)
	if strings.Contains(buf.String(), "Project Alpha") || !strings.Contains(buf.String(), "Project Beta") {
		t.Fatalf("filtered output wrong:\n%s", buf.String())
	}
}

func TestPrintCollection_Empty(t *testing.T) {
	client, err := api.NewClient("http://127.0.0.1:1/api")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	dash := dashboard.New(model.User{ID: 7}, client)

	var buf bytes.Buffer
	printCollection(&buf, dash, dashboard.Leaves)
	if got := strings.TrimSpace(buf.String()); got != "none" {
		t.Fatalf("output = %q, want none", got)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"list", "login", "logout", "version", "whoami"}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("subcommands = %v, want %v", got, want)
	}
}

func TestListRejectsUnknownCollection(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"list", "projects"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown collection") {
		t.Fatalf("err = %v", err)
	}
}
