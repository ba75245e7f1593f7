package arena

import (
	"reflect"
	"sync"
)

// plainDataCache memoizes the pointer-scan result per element type, so
// repeated NewView/NewSequence[T] calls for the same T pay the reflection
// cost once per type rather than once per call.
var plainDataCache sync.Map // map[reflect.Type]bool

// isPlainData reports whether t is safe to place inside arena-owned bytes:
// no pointers, interfaces, maps, channels, functions, slices, or strings
// anywhere in its layout, recursively through structs and arrays. Arena
// memory is never scanned by the garbage collector, so a T that smuggles a
// GC-managed reference into it becomes a dangling pointer the moment the
// referent moves or is collected out from under it.
func isPlainData(t reflect.Type) bool {
	if cached, ok := plainDataCache.Load(t); ok {
		return cached.(bool)
	}
	ok := scanPlainData(t, map[reflect.Type]bool{})
	plainDataCache.Store(t, ok)
	return ok
}

func scanPlainData(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return true
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return scanPlainData(t.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !scanPlainData(t.Field(i).Type, seen) {
				return false
			}
		}
		return true
	default:
		// Pointer, UnsafePointer, Interface, Map, Slice, Chan, Func, String -
		// all either are or transitively hold a GC-managed reference.
		return false
	}
}
