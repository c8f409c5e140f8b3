package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

const gitConfigPrefix = appName + "."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config command and returns raw output.
func runGitConfig(gitExe string, args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	// #nosec G204 -- fixed argument vector
	cmd := exec.Command(gitExe, args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		// no git, no git config
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into multi-value map.
// Input format: "rit.theme nord\nrit.show-icons false\n"
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// a key without a value is a bare boolean
		key, value, found := strings.Cut(line, " ")
		if !found {
			value = "true"
		}
		key = strings.TrimPrefix(key, gitConfigPrefix)
		if key == "" {
			continue
		}
		configMap[key] = append(configMap[key], value)
	}
	return configMap
}

// convertGitConfigToParseConfig converts to format expected by parseConfig().
func convertGitConfigToParseConfig(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any)
	for key, values := range gitCfg {
		switch len(values) {
		case 0:
			continue
		case 1:
			result[key] = values[0]
		default:
			anySlice := make([]any, len(values))
			for i, v := range values {
				anySlice[i] = v
			}
			result[key] = anySlice
		}
	}
	return result
}

// loadGitConfig reads rit.* git config values and returns map for parseConfig.
func loadGitConfig(gitExe string, globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config"}
	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}
	args = append(args, "--get-regexp", `^rit\.`)

	output, err := runGitConfig(gitExe, args, repoPath)
	if err != nil {
		return nil, err
	}
	return convertGitConfigToParseConfig(parseGitConfigOutput(output)), nil
}

// parseCLIConfigOverrides parses --config=rit.key=value format.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	for _, override := range overrides {
		fullKey, value, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("invalid config override: %q, expected format: rit.key=value (note: use = not space)", override)
		}
		if !strings.HasPrefix(fullKey, gitConfigPrefix) {
			return nil, fmt.Errorf("config override key must start with '%s': %q", gitConfigPrefix, fullKey)
		}
		key := strings.TrimPrefix(fullKey, gitConfigPrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}
		// repeated keys: last one wins
		result[key] = value
	}
	return result, nil
}
