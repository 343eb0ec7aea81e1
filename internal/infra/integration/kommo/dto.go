package kommo

type customFieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

type customField struct {
	FieldCode string             `json:"field_code"`
	Values    []customFieldValue `json:"values"`
}

type contactRequest struct {
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	CustomFieldsValues []customField `json:"custom_fields_values,omitempty"`
}

type tag struct {
	Name string `json:"name"`
}

type contactRef struct {
	ID int `json:"id"`
}

type leadEmbedded struct {
	Tags     []tag        `json:"tags,omitempty"`
	Contacts []contactRef `json:"contacts,omitempty"`
}

type leadRequest struct {
	Name     string       `json:"name"`
	StatusID int          `json:"status_id,omitempty"`
	Embedded leadEmbedded `json:"_embedded"`
}

type embeddedIDs struct {
	Embedded struct {
		Leads    []contactRef `json:"leads"`
		Contacts []contactRef `json:"contacts"`
	} `json:"_embedded"`
}
