package model

import (
	"github.com/samber/lo"

	dErrors "idsforge/pkg/domain-errors"
)

// Clone returns a deep copy of the root. Every edit operation works on a
// clone and returns it, so snapshots already handed out never change
// underneath their holders.
func (r *IDSRoot) Clone() *IDSRoot {
	if r == nil {
		return nil
	}
	out := &IDSRoot{Header: r.Header}
	out.Sections = make([]Section, len(r.Sections))
	for i, sec := range r.Sections {
		out.Sections[i] = sec.clone()
	}
	return out
}

func (s Section) clone() Section {
	out := s
	out.Specifications = make([]Specification, len(s.Specifications))
	for i, spec := range s.Specifications {
		out.Specifications[i] = spec.clone()
	}
	return out
}

func (s Specification) clone() Specification {
	out := s
	out.Applicability = s.Applicability.clone()
	out.Requirements = s.Requirements.clone()
	return out
}

func (f FacetSet) clone() FacetSet {
	out := FacetSet{
		Entities: append([]EntityFacet(nil), f.Entities...),
		PartOfs:  append([]PartOfFacet(nil), f.PartOfs...),
	}
	out.Classifications = lo.Map(f.Classifications, func(c ClassificationFacet, _ int) ClassificationFacet {
		c.Value.Items = append([]string(nil), c.Value.Items...)
		return c
	})
	out.Attributes = lo.Map(f.Attributes, func(a AttributeFacet, _ int) AttributeFacet {
		a.Value.Items = append([]string(nil), a.Value.Items...)
		return a
	})
	out.Properties = lo.Map(f.Properties, func(p PropertyFacet, _ int) PropertyFacet {
		p.Value.Items = append([]string(nil), p.Value.Items...)
		return p
	})
	out.Materials = lo.Map(f.Materials, func(m MaterialFacet, _ int) MaterialFacet {
		m.Value.Items = append([]string(nil), m.Value.Items...)
		return m
	})
	return out
}

// AddSection appends a new titled section and returns the new snapshot.
func (r *IDSRoot) AddSection(title string) *IDSRoot {
	out := r.Clone()
	out.Sections = append(out.Sections, NewSection(title))
	return out
}

// RemoveSection filters out the section with the given id. Removing an
// unknown id is a no-op returning an unchanged snapshot.
func (r *IDSRoot) RemoveSection(sectionID string) *IDSRoot {
	out := r.Clone()
	out.Sections = lo.Filter(out.Sections, func(s Section, _ int) bool {
		return s.ID != sectionID
	})
	return out
}

// AddSpecification appends a default specification to the named section.
func (r *IDSRoot) AddSpecification(sectionID string) (*IDSRoot, error) {
	out := r.Clone()
	sec := out.section(sectionID)
	if sec == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "section %s not found", sectionID)
	}
	sec.Specifications = append(sec.Specifications, NewSpecification("New specification"))
	return out, nil
}

// RemoveSpecification filters out one specification by id.
func (r *IDSRoot) RemoveSpecification(sectionID, specID string) (*IDSRoot, error) {
	out := r.Clone()
	sec := out.section(sectionID)
	if sec == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "section %s not found", sectionID)
	}
	sec.Specifications = lo.Filter(sec.Specifications, func(s Specification, _ int) bool {
		return s.ID != specID
	})
	return out, nil
}

// ReplaceSpecification swaps in a whole edited specification by id. The
// replacement keeps its place in order; its ID must match an existing one.
func (r *IDSRoot) ReplaceSpecification(sectionID string, spec Specification) (*IDSRoot, error) {
	out := r.Clone()
	sec := out.section(sectionID)
	if sec == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "section %s not found", sectionID)
	}
	for i := range sec.Specifications {
		if sec.Specifications[i].ID == spec.ID {
			spec.SetName(spec.DisplayName())
			sec.Specifications[i] = spec.clone()
			return out, nil
		}
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "specification %s not found", spec.ID)
}

func (r *IDSRoot) section(id string) *Section {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i]
		}
	}
	return nil
}

// Specifications flattens all (section, specification) pairs in document
// order, the order the codec exports them in.
func (r *IDSRoot) Specifications() []Specification {
	var out []Specification
	for _, sec := range r.Sections {
		out = append(out, sec.Specifications...)
	}
	return out
}
