package repository

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "sort"
    "strconv"
    "strings"
    "time"
)

var timeLayouts = []string{
    time.RFC3339Nano,
    "2006-01-02 15:04:05.999999999-07:00",
    "2006-01-02 15:04:05.999999999 -0700 MST",
    "2006-01-02 15:04:05.999999999Z07:00",
    "2006-01-02 15:04:05.999999999",
    "2006-01-02T15:04:05.999999999",
    "2006-01-02 15:04:05",
    "2006-01-02",
}

// parseTime accepts the timestamp renderings of the supported drivers.
// database/sql turns time.Time into RFC3339Nano when scanning into a string.
func parseTime(ns sql.NullString) (*time.Time, error) {
    s := strings.TrimSpace(ns.String)
    if !ns.Valid || s == "" || s == "-" {
        return nil, nil
    }
    for _, layout := range timeLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            t = t.UTC()
            return &t, nil
        }
    }
    return nil, fmt.Errorf("unrecognised timestamp %q", s)
}

func decodeJSON(ns sql.NullString, dst any) error {
    s := strings.TrimSpace(ns.String)
    if !ns.Valid || s == "" || s == "null" {
        return nil
    }
    return json.Unmarshal([]byte(s), dst)
}

func stringList(ns sql.NullString) ([]string, error) {
    var out []string
    if err := decodeJSON(ns, &out); err != nil {
        return nil, err
    }
    return out, nil
}

// percentMap reads {"instagram": "35%"} or {"instagram": 35}.
func percentMap(ns sql.NullString) (map[string]float64, error) {
    raw := map[string]json.RawMessage{}
    if err := decodeJSON(ns, &raw); err != nil {
        return nil, err
    }
    if len(raw) == 0 {
        return nil, nil
    }
    out := make(map[string]float64, len(raw))
    for k, v := range raw {
        var n float64
        if err := json.Unmarshal(v, &n); err == nil {
            out[k] = n
            continue
        }
        var s string
        if err := json.Unmarshal(v, &s); err != nil {
            return nil, fmt.Errorf("budget for %s: %w", k, err)
        }
        p, err := ParsePercent(s)
        if err != nil {
            return nil, fmt.Errorf("budget for %s: %w", k, err)
        }
        out[k] = p
    }
    return out, nil
}

// ParsePercent turns "35%" or "35" into 35.
func ParsePercent(s string) (float64, error) {
    s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
    return strconv.ParseFloat(s, 64)
}

// actionList reads a next-iteration recommendation stored as a string,
// a list of strings, or an object of named actions.
func actionList(ns sql.NullString) ([]string, error) {
    s := strings.TrimSpace(ns.String)
    if !ns.Valid || s == "" || s == "null" {
        return nil, nil
    }
    var single string
    if err := json.Unmarshal([]byte(s), &single); err == nil {
        if single == "" {
            return nil, nil
        }
        return []string{single}, nil
    }
    var list []string
    if err := json.Unmarshal([]byte(s), &list); err == nil {
        return list, nil
    }
    var obj map[string]any
    if err := json.Unmarshal([]byte(s), &obj); err != nil {
        return nil, err
    }
    keys := make([]string, 0, len(obj))
    for k := range obj {
        keys = append(keys, k)
    }
    sort.Strings(keys)
    out := make([]string, 0, len(keys))
    for _, k := range keys {
        out = append(out, fmt.Sprintf("%s: %v", k, obj[k]))
    }
    return out, nil
}

func encodeJSON(v any) (string, error) {
    b, err := json.Marshal(v)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

// nullTime is the bind value for an optional timestamp.
func nullTime(t *time.Time) any {
    if t == nil {
        return nil
    }
    return t.UTC()
}
