package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts pointers into random readable names, so mesh snapshots can be
// told apart in logs. Names are keyed by address rather than by the pointer
// itself so that naming a mesh never keeps it alive. An address reused after
// garbage collection may get an old name back, which is fine for logs.

var (
	mu   sync.Mutex
	memo map[uintptr]string
)

func init() {
	memo = make(map[uintptr]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns the readable name of a pointer, creating one on first use. Nil
// pointers and non-pointer values are named "Ø".
func Name(obj interface{}) string {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	addr := v.Pointer()
	if r, ok := memo[addr]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	memo[addr] = r
	return r
}

func title(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
