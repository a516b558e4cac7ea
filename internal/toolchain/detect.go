package toolchain

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Detect reads JAVA_VERSION from the release file of a JDK installation.
func Detect(javaHome string) (string, error) {
	if javaHome == "" {
		return "", fmt.Errorf("toolchain: no JDK location given")
	}
	f, err := os.Open(filepath.Join(javaHome, "release"))
	if err != nil {
		return "", fmt.Errorf("toolchain: reading JDK release file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || strings.TrimSpace(key) != "JAVA_VERSION" {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("toolchain: reading JDK release file: %w", err)
	}
	return "", fmt.Errorf("toolchain: no JAVA_VERSION in %s", filepath.Join(javaHome, "release"))
}
