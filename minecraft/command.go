package minecraft

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mcpi/oerror"
)

// lineBreaks replaces characters that would end a command line early.
var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// writeCommand writes a command and its arguments to b as a line of the form name(arg,arg,...), without
// the trailing newline.
func writeCommand(b *bytes.Buffer, name string, args ...interface{}) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		switch v := arg.(type) {
		case string:
			b.WriteString(lineBreaks.Replace(v))
		case int:
			b.WriteString(strconv.Itoa(v))
		case float64:
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
	b.WriteByte(')')
}

// parseIDs parses a reply of entity ids separated by '|'. An empty reply holds no ids.
func parseIDs(reply string) ([]int, error) {
	if reply == "" {
		return []int{}, nil
	}
	fields := strings.Split(reply, "|")
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, oerror.New("malformed entity id %q in reply %q", f, reply)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseVec3 parses a reply of three comma separated floats.
func parseVec3(reply string) (mgl64.Vec3, error) {
	fields := strings.Split(reply, ",")
	if len(fields) != 3 {
		return mgl64.Vec3{}, oerror.New("expected 3 coordinates, got %q", reply)
	}
	var vec mgl64.Vec3
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return mgl64.Vec3{}, oerror.New("malformed coordinate %q in reply %q", f, reply)
		}
		vec[i] = v
	}
	return vec, nil
}
