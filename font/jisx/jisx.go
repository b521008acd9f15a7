// jisx translates Unicode code points to the legacy JIS X 0213 codes
// that key the full-width glyph resources. The mapping comes from the
// ISO-2022-JP-2004 standard table, a tab-delimited text file whose
// first 23 lines are metadata.
package jisx

import "bufio"
import "os"
import "strconv"
import "strings"

// Number of metadata lines before the first mapping record.
const headerLines = 23

// A single mapping record: plane/version, JIS code and Unicode code
// point, straight from one row of the standard table.
type Record struct {
	Ver   int
	Code  uint16
	Point rune
}

// A loaded code mapping table. Built once per font instance; the
// reverse map makes code-point-to-JIS translation O(1).
type Table struct {
	records []Record
	toJIS   map[rune]uint16
}

// Loads the mapping table from the given path. Unlike the glyph
// resources, the table is required: without it no full-width glyph
// can be keyed, so a missing or unreadable file is an error rather
// than a silent degradation.
//
// Rows whose fields don't parse are skipped, not fatal: the standard
// table carries comment rows and unmapped entries.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil { return nil, err }
	defer file.Close()

	table := &Table{ toJIS: make(map[rune]uint16) }
	scanner := bufio.NewScanner(file)
	for skip := 0; skip < headerLines && scanner.Scan(); skip++ {}
	for scanner.Scan() {
		record, ok := parseRecord(scanner.Text())
		if !ok { continue }
		table.records = append(table.records, record)
		table.toJIS[record.Point] = record.Code
	}
	if err := scanner.Err(); err != nil { return nil, err }
	return table, nil
}

// Parses one table row. The first field is "ver-jiscode" with the
// code in hex, the second is "prefix+codepoint" (e.g. "U+3042").
func parseRecord(line string) (Record, bool) {
	columns := strings.Split(line, "\t")
	if len(columns) < 2 { return Record{}, false }

	verAndCode := strings.SplitN(columns[0], "-", 2)
	if len(verAndCode) != 2 { return Record{}, false }
	ver, err := strconv.Atoi(verAndCode[0])
	if err != nil { return Record{}, false }
	code, err := strconv.ParseUint(verAndCode[1], 16, 16)
	if err != nil { return Record{}, false }

	prefixAndPoint := strings.SplitN(columns[1], "+", 2)
	if len(prefixAndPoint) != 2 { return Record{}, false }
	point, err := strconv.ParseUint(prefixAndPoint[1], 16, 32)
	if err != nil { return Record{}, false }

	return Record{ Ver: ver, Code: uint16(code), Point: rune(point) }, true
}

// Returns the legacy JIS code for the given code point, or false if
// the table has no mapping for it.
func (self *Table) Code(point rune) (uint16, bool) {
	code, found := self.toJIS[point]
	return code, found
}

// Returns the number of mapping records loaded from the table.
func (self *Table) Len() int { return len(self.records) }
