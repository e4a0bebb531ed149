// Package secrets sources execution-context credentials from
// SOPS-encrypted files by shelling out to the sops binary.
package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// SOPSOps provides SOPS decryption operations.
type SOPSOps struct{}

// NewSOPSOps creates a new SOPSOps instance.
func NewSOPSOps() *SOPSOps {
	return &SOPSOps{}
}

// Decrypt decrypts a SOPS-encrypted YAML file and returns JSON bytes.
func (s *SOPSOps) Decrypt(ctx context.Context, file string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "sops", "--input-type", "yaml", "--output-type", "json", "-d", file)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sops decrypt failed for %s: %w: %s", file, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// DecryptToMap decrypts a SOPS-encrypted file into a map.
func (s *SOPSOps) DecryptToMap(ctx context.Context, file string) (map[string]any, error) {
	data, err := s.Decrypt(ctx, file)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse decrypted JSON from %s: %w", file, err)
	}
	return result, nil
}

// CredentialEnv decrypts a secrets file and flattens it into environment
// variable form for injection into provider commands. Nested maps join
// with underscores and keys are upper-cased, so {aws: {access_key: x}}
// becomes AWS_ACCESS_KEY=x. Non-string leaves are formatted with %v.
func (s *SOPSOps) CredentialEnv(ctx context.Context, file string) (map[string]string, error) {
	data, err := s.DecryptToMap(ctx, file)
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	flattenEnv("", data, env)
	return env, nil
}

func flattenEnv(prefix string, data map[string]any, out map[string]string) {
	for k, v := range data {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		if nested, ok := v.(map[string]any); ok {
			flattenEnv(key, nested, out)
			continue
		}

		out[key] = fmt.Sprintf("%v", v)
	}
}
