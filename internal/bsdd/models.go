package bsdd

// Class is one dictionary class returned by a search.
type Class struct {
	Name          string `json:"name"`
	URI           string `json:"uri"`
	Code          string `json:"code,omitempty"`
	DictionaryURI string `json:"dictionary_uri,omitempty"`
}

// Property is one property defined on a dictionary class.
type Property struct {
	Name        string `json:"name"`
	URI         string `json:"uri"`
	Datatype    string `json:"datatype,omitempty"`
	PropertySet string `json:"property_set,omitempty"`
	Description string `json:"description,omitempty"`
}

type classSearchResponse struct {
	Classes []Class `json:"classes"`
}

type classPropertiesResponse struct {
	Properties []Property `json:"properties"`
	TotalCount int        `json:"totalCount"`
}
