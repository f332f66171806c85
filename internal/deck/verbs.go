package deck

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/drill/internal/config"
	"github.com/verte-zerg/drill/internal/model"
)

// Verb holds the principal parts of a verb.
type Verb struct {
	Infinitive string
	Third      string
	Preterite  string
	Perfect    string
	Meaning    string
}

func verbFromFields(fields []string) (Verb, error) {
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < 4 {
		return Verb{}, fmt.Errorf("expected infinitive, third person, preterite and perfect, got %d fields", len(fields))
	}
	v := Verb{
		Infinitive: strings.TrimSpace(fields[0]),
		Third:      strings.TrimSpace(fields[1]),
		Preterite:  strings.TrimSpace(fields[2]),
		Perfect:    strings.TrimSpace(fields[3]),
	}
	if len(fields) > 4 {
		v.Meaning = strings.TrimSpace(fields[4])
	}
	if v.Infinitive == "" {
		return Verb{}, fmt.Errorf("empty infinitive")
	}
	return v, nil
}

// LoadVerbs reads a verb deck: `infinitive<d>third<d>preterite<d>perfect[<d>meaning]`.
func LoadVerbs(path string, delim rune) ([]Verb, error) {
	var verbs []Verb
	add := func(where string, fields []string) error {
		v, err := verbFromFields(fields)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", path, where, err)
		}
		verbs = append(verbs, v)
		return nil
	}
	var err error
	if IsSpreadsheet(path) {
		err = eachRow(path, func(n int, fields []string) error {
			return add(fmt.Sprintf("row %d", n), fields)
		})
	} else {
		err = eachLine(path, func(n int, line string) error {
			return add(fmt.Sprintf("line %d", n), strings.Split(line, string(delim)))
		})
	}
	if err != nil {
		return nil, err
	}
	if len(verbs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDeck)
	}
	return verbs, nil
}

// ConvertVerbs renders verbs as card lines: the infinitive asks for the other
// three forms, the meaning becomes the annotation.
func ConvertVerbs(verbs []Verb, delim rune) string {
	formsSep := ", "
	if delim == ',' {
		formsSep = " / "
	}
	d := string(delim)
	var b strings.Builder
	for _, v := range verbs {
		b.WriteString(v.Infinitive)
		b.WriteString(d)
		b.WriteString(strings.Join([]string{v.Third, v.Preterite, v.Perfect}, formsSep))
		if v.Meaning != "" {
			b.WriteString(d)
			b.WriteString(v.Meaning)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ConvertedPath returns where the card deck for src is written.
func ConvertedPath(src string) string {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), stem+"_as_cards.csv")
}

// WriteConverted writes verbs as a card deck next to src and returns its path.
// The output starts with a header so it loads with the right delimiter.
func WriteConverted(src string, verbs []Verb, delim rune) (string, error) {
	header, err := config.FormatDeckHeader(string(model.ModeCards), string(delim))
	if err != nil {
		return "", err
	}
	outPath := ConvertedPath(src)
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), "deck-*.csv")
	if err != nil {
		return "", fmt.Errorf("failed to create temp deck: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := fmt.Fprintf(writer, "%s\n\n%s", header, ConvertVerbs(verbs, delim)); err != nil {
		return "", fmt.Errorf("failed to write deck: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush deck: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close deck: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("failed to write deck: %w", err)
	}
	return outPath, nil
}
