// Package manifest declares baseclass classes and mixins in YAML.
//
// Decoding is strict: unknown keys and duplicate mapping keys are errors,
// the latter reported as *DuplicateKeyError with both positions. Field
// types are named (string, int, float64, bool, time, duration, bytes, any,
// []T, map[string]T); defaults are coerced to the declared type. Default
// factories are named too: uuid, ulid, now, empty and copy:<field>.
package manifest
