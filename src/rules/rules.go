// Package rules executes the pipe-delimited validation rule grammar
// (`rule[:arg1,arg2]|rule2|...`) carried by field definitions. Rules with a
// validator/v10 equivalent are delegated to it; membership, truthy, date and
// regex rules are evaluated natively. Unknown rule names are skipped rather
// than failing the submission.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// tagMap translates source rule names to validator/v10 tags. An empty tag
// means the rule is a no-op here (e.g. "string": every input value already is
// one).
var tagMap = map[string]string{
	"email":     "email",
	"numeric":   "numeric",
	"integer":   "number",
	"url":       "url",
	"alpha":     "alpha",
	"alpha_num": "alphanum",
	"boolean":   "boolean",
	"ip":        "ip",
	"uuid":      "uuid",
	"string":    "",
	"nullable":  "",
}

// argTagMap translates rules carrying a single argument to validator tags.
var argTagMap = map[string]string{
	"min": "min",
	"max": "max",
	"len": "len",
}

// Validator wraps a validator/v10 instance. It is the mutable "validator
// handle" hook handlers receive: replacing rules or messages on the hook
// context changes what Validate sees.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks every entry of rules against data. Keys ending in ".*"
// apply per element of the base key's list value. The returned map holds the
// raw error messages per failing field, in rule-declaration order; messages
// supplies the text per field code (callers provide the fallback).
func (r *Validator) Validate(data map[string]interface{}, rules map[string]string, messages map[string]string) map[string][]string {
	errs := map[string][]string{}

	// Deterministic order: base rules in data-declaration order is not
	// possible on a map, so order errors per field; callers only join
	// per-field messages, never iterate the map ordered.
	for key, ruleStr := range rules {
		if ruleStr == "" {
			continue
		}

		if base, ok := strings.CutSuffix(key, ".*"); ok {
			list := toList(data[base])
			for _, element := range list {
				for _, rule := range strings.Split(ruleStr, "|") {
					if rule == "" || r.checkRule(element, rule) {
						continue
					}
					errs[base] = append(errs[base], messageFor(messages, base))
				}
			}
			continue
		}

		value, present := data[key]
		if list, isList := value.([]string); isList {
			// Only required applies to the list as a whole; element
			// checks arrive via the ".*" entry.
			if hasRule(ruleStr, "required") && len(list) == 0 {
				errs[key] = append(errs[key], messageFor(messages, key))
			}
			continue
		}

		str, _ := value.(string)
		if !present || str == "" {
			if hasRule(ruleStr, "required") {
				errs[key] = append(errs[key], messageFor(messages, key))
			}
			// Absent optional value: nothing else to check.
			continue
		}

		for _, rule := range strings.Split(ruleStr, "|") {
			if rule == "" || rule == "required" || r.checkRule(str, rule) {
				continue
			}
			errs[key] = append(errs[key], messageFor(messages, key))
		}
	}

	return errs
}

// checkRule evaluates one rule against a scalar value.
func (r *Validator) checkRule(value, rule string) bool {
	name, args, _ := strings.Cut(rule, ":")

	switch name {
	case "in":
		for _, allowed := range strings.Split(args, ",") {
			if value == allowed {
				return true
			}
		}
		return false
	case "truthy":
		return value != "" && value != "0" && value != "false"
	case "date":
		return isDate(value)
	case "regex":
		re, err := regexp.Compile(args)
		if err != nil {
			return true
		}
		return re.MatchString(value)
	}

	if tag, ok := argTagMap[name]; ok && args != "" {
		return r.v.Var(value, fmt.Sprintf("%s=%s", tag, args)) == nil
	}

	tag, ok := tagMap[name]
	if !ok || tag == "" {
		// Unknown or no-op rule.
		return true
	}
	return r.v.Var(value, tag) == nil
}

func isDate(value string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func hasRule(ruleStr, name string) bool {
	for _, rule := range strings.Split(ruleStr, "|") {
		if rule == name {
			return true
		}
	}
	return false
}

func messageFor(messages map[string]string, key string) string {
	if msg, ok := messages[key]; ok && msg != "" {
		return msg
	}
	return key + " is invalid"
}

func toList(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
