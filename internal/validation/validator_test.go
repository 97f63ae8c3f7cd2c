// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package validation

import (
	"strings"
	"testing"
)

type registrationRequest struct {
	Name     string `validate:"required,max=255"`
	Template string `validate:"required,tilesource"`
	Scheme   string `validate:"omitempty,tilescheme"`
	Format   string `validate:"omitempty,tileformat"`
	MinZoom  int    `validate:"min=0,max=24"`
	MaxZoom  int    `validate:"min=0,max=24"`
}

func TestValidateStructPasses(t *testing.T) {
	req := registrationRequest{
		Name:     "Aurelia Terrain",
		Template: "https://tiles.example.com/{z}/{x}/{y}.png",
		Scheme:   "tms",
		Format:   "png",
		MinZoom:  0,
		MaxZoom:  8,
	}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("Expected valid struct, got: %v", err)
	}
}

func TestValidateStructTileSourceTemplates(t *testing.T) {
	ok := []string{
		"https://tiles.example.com/{z}/{x}/{y}.png",
		"http://localhost:8080/{z}/{x}/{y}.png",
		"file://pyramids/aurelia/{z}/{x}/{y}.png",
		"geojson://data/realms.geojson",
	}
	for _, template := range ok {
		req := registrationRequest{Name: "n", Template: template}
		if err := ValidateStruct(&req); err != nil {
			t.Errorf("Template %q rejected: %v", template, err)
		}
	}

	bad := []string{"ftp://tiles/{z}/{x}/{y}.png", "/absolute/path.png", "tiles"}
	for _, template := range bad {
		req := registrationRequest{Name: "n", Template: template}
		err := ValidateStruct(&req)
		if err == nil {
			t.Errorf("Template %q accepted, want rejection", template)
			continue
		}
		if !strings.Contains(err.Error(), "tile source template") {
			t.Errorf("Template %q error = %q, want tilesource message", template, err)
		}
	}
}

func TestValidateStructSchemeAndFormat(t *testing.T) {
	req := registrationRequest{Name: "n", Template: "geojson://d.geojson", Scheme: "upside-down"}
	if err := ValidateStruct(&req); err == nil {
		t.Error("Expected scheme rejection")
	}

	req = registrationRequest{Name: "n", Template: "geojson://d.geojson", Format: "tiff"}
	if err := ValidateStruct(&req); err == nil {
		t.Error("Expected format rejection")
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	req := registrationRequest{Template: "https://t/{z}/{x}/{y}.png"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected missing-name failure")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Message != "Name is required" {
		t.Errorf("Message = %q, want 'Name is required'", apiErr.Message)
	}
	if apiErr.Details["field"] != "Name" {
		t.Errorf("Details field = %v", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	req := registrationRequest{MinZoom: -3, MaxZoom: 99}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected multiple failures")
	}
	if len(err.Errors()) < 3 {
		t.Fatalf("Errors = %d, want at least 3", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected fields detail for multi-error response")
	}
	if !strings.Contains(apiErr.Message, "MinZoom") || !strings.Contains(apiErr.Message, "MaxZoom") {
		t.Errorf("Message = %q, want both zoom fields named", apiErr.Message)
	}
}
