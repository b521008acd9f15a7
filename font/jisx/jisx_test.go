package jisx

import "os"
import "path/filepath"
import "strings"
import "testing"

func writeTable(t *testing.T, rows ...string) string {
	t.Helper()
	var builder strings.Builder
	for i := 0; i < headerLines; i++ {
		builder.WriteString("# metadata line\n")
	}
	for _, row := range rows {
		builder.WriteString(row + "\n")
	}
	path := filepath.Join(t.TempDir(), "iso-2022-jp-2004-std.tsv")
	err := os.WriteFile(path, []byte(builder.String()), 0o644)
	if err != nil { t.Fatal(err) }
	return path
}

func TestLoad(t *testing.T) {
	path := writeTable(t,
		"1-2422\tU+3042\t# HIRAGANA LETTER A",
		"1-2424\tU+3044\t# HIRAGANA LETTER I",
		"3-2E21\tU+4FF1\t# CJK",
	)
	table, err := Load(path)
	if err != nil { t.Fatal(err) }
	if table.Len() != 3 { t.Fatalf("expected 3 records, got %d", table.Len()) }

	code, found := table.Code('あ')
	if !found { t.Fatal("expected mapping for あ") }
	if code != 0x2422 { t.Fatalf("expected 2422, got %x", code) }

	code, found = table.Code('俱')
	if !found { t.Fatal("expected mapping") }
	if code != 0x2E21 { t.Fatalf("expected 2e21, got %x", code) }

	_, found = table.Code('X')
	if found { t.Fatal("didn't expect a mapping for X") }
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	path := writeTable(t,
		"not a record",
		"1-ZZZZ\tU+3042",
		"12422\tU+3044",
		"1-2426\tU3046",      // no '+' separator
		"1-2428\tU+XYZ",      // bad code point
		"1-242A\tU+304A\tok", // the one valid row
	)
	table, err := Load(path)
	if err != nil { t.Fatal(err) }
	if table.Len() != 1 { t.Fatalf("expected 1 record, got %d", table.Len()) }

	code, found := table.Code('お')
	if !found { t.Fatal("expected mapping for お") }
	if code != 0x242A { t.Fatalf("expected 242a, got %x", code) }
}

func TestHeaderIsSkipped(t *testing.T) {
	// header lines that would parse as records must not be loaded
	var builder strings.Builder
	for i := 0; i < headerLines; i++ {
		builder.WriteString("1-2121\tU+3000\n")
	}
	path := filepath.Join(t.TempDir(), "table.tsv")
	err := os.WriteFile(path, []byte(builder.String()), 0o644)
	if err != nil { t.Fatal(err) }

	table, err := Load(path)
	if err != nil { t.Fatal(err) }
	if table.Len() != 0 { t.Fatalf("expected 0 records, got %d", table.Len()) }
}

func TestMissingTable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tsv"))
	if err == nil { t.Fatal("expected an error") }
}
