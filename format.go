package opts

import (
	"strconv"
	"strings"
)

// Colour256 is set on colour numbers that address the 256-colour palette.
const Colour256 = 0x100

var colourNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

var keyNames = map[int64]string{
	0x08: "BSpace",
	0x09: "Tab",
	0x0d: "Enter",
	0x1b: "Escape",
	0x20: "Space",
	0x7f: "BSpace",
}

// FormatValue renders value according to the declared type of spec. Only
// STRING options are quoted, and only when verbose is false.
func FormatValue(spec OptionSpec, value Value, verbose bool) string {
	switch spec.Type {
	case TypeString:
		text := value.Text()
		if verbose {
			return text
		}
		return `"` + text + `"`
	case TypeNumber:
		return numberText(value)
	case TypeKey:
		if value.Kind == ValueNumber {
			return KeyName(value.Num)
		}
		return value.Text()
	case TypeColour:
		if value.Kind == ValueNumber {
			return ColourName(value.Num)
		}
		return value.Text()
	case TypeFlag:
		return flagText(flagOf(value))
	case TypeChoice:
		if value.Kind != ValueNumber {
			return value.Text()
		}
		if value.Num < 0 || value.Num >= int64(len(spec.Choices)) {
			return "invalid"
		}
		return spec.Choices[value.Num]
	default:
		return value.Text()
	}
}

// FormatUserValue renders a user-defined option value. User options carry no
// type so the raw string is quoted unless verbose.
func FormatUserValue(value Value, verbose bool) string {
	if verbose {
		return value.Text()
	}
	return `"` + value.Text() + `"`
}

// FormatLine composes the printed line for a declared option.
func FormatLine(name, rendered string, verbose bool) string {
	if verbose {
		return rendered
	}
	return name + " " + rendered
}

// FormatUserLine composes the printed line for a user-defined option.
func FormatUserLine(name string, value Value, verbose bool) string {
	return FormatLine(name, FormatUserValue(value, verbose), verbose)
}

// FormatEntry renders entry as a printable line. spec is ignored for
// user-defined entries.
func FormatEntry(spec OptionSpec, entry Entry, verbose bool) string {
	if entry.UserDefined() {
		return FormatUserLine(entry.Name, entry.Value, verbose)
	}
	return FormatLine(spec.Name, FormatValue(spec, entry.Value, verbose), verbose)
}

// KeyName returns the display name of a key code.
func KeyName(code int64) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	if code >= 0x01 && code <= 0x1a {
		return "C-" + string(rune('a'+code-1))
	}
	if code > 0x20 && code < 0x7f {
		return string(rune(code))
	}
	return "None"
}

// ColourName returns the display name of a colour number.
func ColourName(colour int64) string {
	if colour&Colour256 != 0 {
		index := colour &^ Colour256
		if index >= 0 && index <= 255 {
			return "colour" + strconv.FormatInt(index, 10)
		}
		return "invalid"
	}
	switch {
	case colour >= 0 && colour <= 7:
		return colourNames[colour]
	case colour == 8:
		return "default"
	case colour >= 90 && colour <= 97:
		return "bright" + colourNames[colour-90]
	default:
		return "invalid"
	}
}

// KeyCode returns the key code displayed as name. Control keys are also
// accepted in their "C-x" form.
func KeyCode(name string) (int64, bool) {
	if name == "None" {
		return keyNone, true
	}
	if len(name) == 3 && strings.HasPrefix(name, "C-") && name[2] >= 'a' && name[2] <= 'z' {
		return int64(name[2]-'a') + 1, true
	}
	for code := int64(0x7f); code > 0; code-- {
		if KeyName(code) == name {
			return code, true
		}
	}
	return 0, false
}

// ColourCode returns the colour number displayed as name.
func ColourCode(name string) (int64, bool) {
	if rest, ok := strings.CutPrefix(name, "colour"); ok {
		index, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || index < 0 || index > 255 {
			return 0, false
		}
		return index | Colour256, true
	}
	for colour := int64(0); colour <= 97; colour++ {
		if rendered := ColourName(colour); rendered != "invalid" && rendered == name {
			return colour, true
		}
	}
	return 0, false
}

func numberText(value Value) string {
	switch value.Kind {
	case ValueNumber:
		return strconv.FormatInt(value.Num, 10)
	case ValueFlag:
		if value.Flag {
			return "1"
		}
		return "0"
	default:
		return value.Str
	}
}

func flagOf(value Value) bool {
	switch value.Kind {
	case ValueFlag:
		return value.Flag
	case ValueNumber:
		return value.Num != 0
	default:
		return value.Str == "on"
	}
}

func flagText(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
