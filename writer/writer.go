package writer

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// XML writes value as indented markup followed by a newline.
func XML(out io.Writer, value any) error {
	result, err := xml.MarshalIndent(value, "", " ")
	if err != nil {
		return errors.Wrap(err, "marshalling xml")
	}

	_, err = out.Write(append(result, '\n'))
	return errors.Wrap(err, "writing xml")
}

// OutputPath names the file generated from source: the source's base name
// with ext in place of its extension, placed in dir, or beside the source
// when dir is empty.
func OutputPath(source, dir, ext string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ext
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, name)
}

func ToFile(filename string, content []byte) error {
	err := os.WriteFile(filename, content, 0666)
	return errors.Wrapf(err, "writing %s", filename)
}
