// discovery.go
// Config discovery and loading logic for msgformat
package internal

import (
	"fmt"
	"path"
	"strings"

	"github.com/YakDriver/msgformat/filesystem"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// LoadConfig loads and merges the configuration files that apply to relDir.
// Files are read from the root of fsys down to relDir, so a file closer to
// relDir overrides its parents.
func LoadConfig(fsys filesystem.FileSystem, relDir string) (*Config, error) {
	configs, err := collectConfigs(fsys, configPaths(relDir))
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return &Config{}, nil
	}
	merged := mergeConfigs(configs)
	EnableDebug(merged) // Enable internal debug output based on config
	return merged, nil
}

// configPaths lists the candidate config paths from the root to relDir.
func configPaths(relDir string) []string {
	relDir = path.Clean(strings.ReplaceAll(relDir, "\\", "/"))
	paths := []string{ConfigFileName}
	if relDir == "." || relDir == "" {
		return paths
	}
	dir := ""
	for _, seg := range strings.Split(relDir, "/") {
		if seg == "" || seg == "." {
			continue
		}
		dir = path.Join(dir, seg)
		paths = append(paths, path.Join(dir, ConfigFileName))
	}
	return paths
}

// collectConfigs loads every candidate that exists, in order.
func collectConfigs(fsys filesystem.FileSystem, candidates []string) ([]*Config, error) {
	var configs []*Config
	for _, p := range candidates {
		if !fsys.Exists(p) {
			continue
		}
		Debugf("loading config %s", p)
		cfg, err := loadConfigFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("error loading config %s: %w", p, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// loadConfigFile loads a single config file from the FS and parses it into a Config struct.
func loadConfigFile(fsys filesystem.FileSystem, path string) (*Config, error) {
	fileBytes, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(fileBytes, path)
}

// ParseConfig decodes one HCL config document.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse error: %s", diags.Error())
	}
	var partial Config
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &partial)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("decode error: %s", decodeDiags.Error())
	}
	return &partial, nil
}
