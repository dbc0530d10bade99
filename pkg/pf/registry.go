package pf

import (
	"fmt"
	"reflect"
)

// TagRegistry maps Go record types to the four-character tag they carry on
// disk. Formats populate one registry at package initialisation and only
// read from it afterwards.
type TagRegistry struct {
	tags  map[reflect.Type]FourCC
	types map[FourCC]reflect.Type
}

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		tags:  make(map[reflect.Type]FourCC),
		types: make(map[FourCC]reflect.Type),
	}
}

// RegisterTag binds T to tag. Rebinding either side fails.
func RegisterTag[T any](r *TagRegistry, tag FourCC) error {
	t := reflect.TypeFor[T]()
	if old, ok := r.tags[t]; ok {
		return fmt.Errorf("pf: %s already tagged %s", t, old)
	}
	if old, ok := r.types[tag]; ok {
		return fmt.Errorf("pf: tag %s already bound to %s", tag, old)
	}
	r.tags[t] = tag
	r.types[tag] = t
	return nil
}

// TagOf returns the tag registered for T.
func TagOf[T any](r *TagRegistry) (FourCC, bool) {
	tag, ok := r.tags[reflect.TypeFor[T]()]
	return tag, ok
}

// MustTagOf is TagOf for types whose registration is part of package
// initialisation; a missing tag is a programming error.
func MustTagOf[T any](r *TagRegistry) FourCC {
	tag, ok := TagOf[T](r)
	if !ok {
		panic(fmt.Sprintf("pf: no tag registered for %s", reflect.TypeFor[T]()))
	}
	return tag
}

// Len returns the number of registered types.
func (r *TagRegistry) Len() int { return len(r.tags) }
