package gfxdef

// Profile names the tile, palette and color descriptors that together
// describe one system's graphics. Empty fields are unset.
type Profile struct {
	ID          string
	Description string
	ChrDef      string
	PalDef      string
	ColDef      string
}

// Merge returns p with every field that is set in o replacing the
// corresponding field in p. Profiles are merged in increasing order of
// precedence: built-in defaults, then catalog entries, then explicit
// overrides.
func (p Profile) Merge(o Profile) Profile {
	if o.ID != "" {
		p.ID = o.ID
	}
	if o.Description != "" {
		p.Description = o.Description
	}
	if o.ChrDef != "" {
		p.ChrDef = o.ChrDef
	}
	if o.PalDef != "" {
		p.PalDef = o.PalDef
	}
	if o.ColDef != "" {
		p.ColDef = o.ColDef
	}
	return p
}

// MergeProfiles folds ps left to right with Merge
func MergeProfiles(ps ...Profile) Profile {
	var p Profile
	for _, o := range ps {
		p = p.Merge(o)
	}
	return p
}
