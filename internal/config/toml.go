// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// HeaderTable names the TOML table a deck header uses.
const HeaderTable = "drill"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz QuizConfig `toml:"quiz"`
}

// QuizConfig maps quiz-related settings. Nil fields are unset.
type QuizConfig struct {
	Delim     *string `toml:"delim"`
	Mode      *string `toml:"mode"`
	Swap      *bool   `toml:"swap"`
	AskBoth   *bool   `toml:"ask-both"`
	NoShuffle *bool   `toml:"no-shuffle"`
	LogLevel  *string `toml:"log-level"`
}

// Merge returns base with every field set in over replacing it.
func Merge(base, over QuizConfig) QuizConfig {
	out := base
	if over.Delim != nil {
		out.Delim = over.Delim
	}
	if over.Mode != nil {
		out.Mode = over.Mode
	}
	if over.Swap != nil {
		out.Swap = over.Swap
	}
	if over.AskBoth != nil {
		out.AskBoth = over.AskBoth
	}
	if over.NoShuffle != nil {
		out.NoShuffle = over.NoShuffle
	}
	if over.LogLevel != nil {
		out.LogLevel = over.LogLevel
	}
	return out
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LoadDeckHeader reads the settings embedded at the top of a deck file.
// A file without a header yields an empty QuizConfig.
func LoadDeckHeader(path string) (QuizConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return QuizConfig{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck.
			_ = cerr
		}
	}()
	return ParseDeckHeader(file)
}

// ParseDeckHeader extracts a commented TOML block such as
//
//	# [drill]
//	# mode = "cards"
//	# delim = ';'
//
// from the leading comment lines of r.
func ParseDeckHeader(r io.Reader) (QuizConfig, error) {
	var body strings.Builder
	inTable := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if inTable {
				break
			}
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if !inTable {
			if content == "["+HeaderTable+"]" {
				inTable = true
				body.WriteString(content)
				body.WriteString("\n")
			}
			continue
		}
		if strings.HasPrefix(content, "[") {
			break
		}
		body.WriteString(content)
		body.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return QuizConfig{}, err
	}
	if !inTable {
		return QuizConfig{}, nil
	}
	var header struct {
		Drill QuizConfig `toml:"drill"`
	}
	if _, err := toml.Decode(body.String(), &header); err != nil {
		return QuizConfig{}, fmt.Errorf("failed to decode deck header: %w", err)
	}
	return header.Drill, nil
}

// FormatDeckHeader renders a commented header that ParseDeckHeader reads back.
func FormatDeckHeader(mode, delim string) (string, error) {
	header := struct {
		Drill struct {
			Mode  string `toml:"mode"`
			Delim string `toml:"delim"`
		} `toml:"drill"`
	}{}
	header.Drill.Mode = mode
	header.Drill.Delim = delim

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(header); err != nil {
		return "", fmt.Errorf("failed to encode deck header: %w", err)
	}
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		out.WriteString("# ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String(), nil
}
