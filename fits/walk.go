package fits

// WalkFunc is called for each unit during traversal.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(index int, u *Unit) error

// Walk calls fn for every unit in file order, starting with the primary HDU.
//
// Example:
//
//	f.Walk(func(i int, u *fits.Unit) error {
//	    axes, err := u.Axes()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(i, u.Kind(), axes)
//	    return nil
//	})
func (f *File) Walk(fn WalkFunc) error {
	for i, u := range f.units {
		if err := fn(i, u); err != nil {
			return err
		}
	}
	return nil
}
