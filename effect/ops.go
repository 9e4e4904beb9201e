package effect

// Set builds a "set" effect: no type coercion, the new value's type must
// match the existing leaf's type category if one is already present.
func Set(path string, value interface{}) Effect { return Effect{Op: OpSet, Path: path, Value: value} }

// Unset builds an "unset" effect: the leaf becomes absent. If the schema
// requires the key, post-mutation revalidation (not the effect itself)
// rejects the transition.
func Unset(path string) Effect { return Effect{Op: OpUnset, Path: path} }

// Copy builds a "copy" effect: reads sourcePath from the state as it stood
// before this rule's effects began running, writes it to path.
func Copy(path, sourcePath string) Effect {
	return Effect{Op: OpCopy, Path: path, SourcePath: sourcePath}
}

// Increment builds an "increment" effect with the given delta.
func Increment(path string, delta float64) Effect {
	return Effect{Op: OpIncrement, Path: path, Delta: delta, HasDelta: true}
}

// Decrement builds a "decrement" effect with the given delta.
func Decrement(path string, delta float64) Effect {
	return Effect{Op: OpDecrement, Path: path, Delta: delta, HasDelta: true}
}

// Append builds an "append" effect; item may be a single value or, if
// already a []interface{}, a list to splice on at the tail.
func Append(path string, item interface{}) Effect {
	return Effect{Op: OpAppend, Path: path, Value: item}
}

// Prepend builds a "prepend" effect; see Append for the item argument.
func Prepend(path string, item interface{}) Effect {
	return Effect{Op: OpPrepend, Path: path, Value: item}
}

// Remove builds a "remove" effect: filters elements equal to needle out of
// the array at path.
func Remove(path string, needle interface{}) Effect {
	return Effect{Op: OpRemove, Path: path, Value: needle}
}

// Clear builds a "clear" effect: sets the array at path to empty.
func Clear(path string) Effect { return Effect{Op: OpClear, Path: path} }

// Merge builds a "merge" effect: shallow right-biased merge of obj into the
// object leaf at path.
func Merge(path string, obj map[string]interface{}) Effect {
	return Effect{Op: OpMerge, Path: path, Value: obj}
}

// TransformNamed builds a "transform" effect using one of the built-in
// named transforms.
func TransformNamed(path string, name Transform) Effect {
	return Effect{Op: OpTransform, Path: path, Named: name}
}

// TransformFn builds a "transform" effect using a user-supplied function.
func TransformFn(path string, fn TransformFunc) Effect {
	return Effect{Op: OpTransform, Path: path, Func: fn}
}
