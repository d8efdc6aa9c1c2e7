// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/config"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old content that is longer\n"), 0644); err != nil {
		t.Fatalf("unable to seed file: %v", err)
	}
	n, err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 bytes written, got %d", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unable to read back: %v", err)
	}
	if string(data) != "new\n" {
		t.Errorf("Expected %q, got %q", "new\n", data)
	}
}

func TestWriteFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	_, err := WriteFile(path, func(w io.Writer) error { return io.ErrShortWrite })
	if err == nil {
		t.Fatal("Expected error from the write callback")
	}
	if _, err := WriteFile(filepath.Join(path, "missing", "out.txt"), func(io.Writer) error { return nil }); err == nil {
		t.Error("Expected error creating a file in a missing directory")
	}
}

func TestSetupDefaults(t *testing.T) {
	cfg, logger, err := Setup("", false)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionConversions(t *testing.T) {
	cfg := config.Default()
	cfg.Poly.Seed = 42
	cfg.Poly.MaxHoleSamples = 7
	cfg.CAD.Layers = []string{"road"}

	poly := PolyOptions(cfg.Poly, zap.NewNop())
	if poly.Rand == nil {
		t.Error("Expected a seeded source for a non-zero seed")
	}
	if poly.MaxHoleSamples != 7 || poly.BoundaryMarkers != 1 {
		t.Errorf("unexpected poly options %+v", poly)
	}
	cfg.Poly.Seed = 0
	if PolyOptions(cfg.Poly, zap.NewNop()).Rand != nil {
		t.Error("Expected no source for a zero seed")
	}

	msh, err := MshOptions(cfg.Msh)
	if err != nil {
		t.Fatalf("MshOptions failed: %v", err)
	}
	if diff := cmp.Diff(mesh.NewMshOptions(), msh); diff != "" {
		t.Errorf("msh options mismatch (-want +got):\n%s", diff)
	}
	cfg.Msh.NodeZones = []int{1}
	if _, err := MshOptions(cfg.Msh); err == nil {
		t.Error("Expected error for a short node zone list")
	}

	if got := DXFOptions(cfg.CAD).Layers; !cmp.Equal(got, []string{"road"}) {
		t.Errorf("Expected layers [road], got %v", got)
	}
	if got := CSVOptions(cfg.CAD).StartX; got != "端点 X" {
		t.Errorf("Expected start column %q, got %q", "端点 X", got)
	}

	table, err := RunoffTable(cfg.Runoff)
	if err != nil {
		t.Fatalf("RunoffTable failed: %v", err)
	}
	if table.Lookup(90) != 0.6 || table.Lookup(255) != 1 {
		t.Errorf("unexpected runoff table %+v", table)
	}
	cfg.Runoff.Classes["water"] = 0
	if _, err := RunoffTable(cfg.Runoff); err == nil {
		t.Error("Expected error for a non-integer class")
	}
}
