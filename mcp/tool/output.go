package tool

import (
	"compress/gzip"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/cwl"
	"github.com/rs/zerolog"
)

var (
	compressedSuffixes = []string{".gz", ".bgz", ".gzip"}
	newlineRemover     = strings.NewReplacer("\r", "", "\n", "")
)

// OutputReader converts engine output objects into response values.
type OutputReader struct {
	logger zerolog.Logger
}

// NewOutputReader creates an output reader.
func NewOutputReader(logger zerolog.Logger) *OutputReader {
	return &OutputReader{logger: logger}
}

// Read resolves declared outputs. With readOutputs enabled File outputs are
// inlined as single line text, only the first member of a File array is read
// and unreadable files fall back to their local path. Otherwise values are
// returned as produced by the engine. Undeclared outputs pass through.
func (r *OutputReader) Read(raw map[string]interface{}, outputs []cwl.Field, readOutputs bool) map[string]interface{} {
	ret := make(map[string]interface{}, len(outputs))
	for name, value := range raw {
		ret[name] = value
	}
	for _, output := range outputs {
		value := raw[output.Name]
		if output.Type.Kind != cwl.File || !readOutputs || value == nil {
			ret[output.Name] = value
			continue
		}
		ret[output.Name] = r.readFile(value)
	}
	return ret
}

func (r *OutputReader) readFile(value interface{}) interface{} {
	if items, ok := asList(value); ok {
		if len(items) == 0 {
			return value
		}
		value = items[0]
	}
	location := fileLocation(value)
	if location == "" {
		return value
	}
	path := localPath(location)
	text, err := readText(path)
	if err != nil {
		r.logger.Debug().Err(err).Str("location", location).Msg("returning output path")
		return path
	}
	return text
}

func fileLocation(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case map[string]interface{}:
		for _, key := range []string{"location", "path"} {
			if location, ok := actual[key].(string); ok && location != "" {
				return location
			}
		}
	}
	return ""
}

func localPath(location string) string {
	if !strings.HasPrefix(location, fileScheme) {
		return location
	}
	path := strings.TrimPrefix(location, fileScheme)
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

func readText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	var reader io.Reader = file
	if isCompressed(path) {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return "", errors.Wrapf(err, "decompress %v", path)
		}
		defer gz.Close()
		reader = gz
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.Newf("%v is not utf-8 text", path)
	}
	return newlineRemover.Replace(string(data)), nil
}

func isCompressed(path string) bool {
	for _, suffix := range compressedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
