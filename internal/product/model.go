package product

type Product struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Weight   string `db:"weight" json:"weight"`
	Price    string `db:"price" json:"price"`
	Quantity int64  `db:"quantity" json:"quantity"`
}

// AddInput carries the raw form values of a new product.
type AddInput struct {
	Name     string `json:"name"`
	Weight   string `json:"weight"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// EditInput is a patch: nil or blank fields keep their stored value.
type EditInput struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name,omitempty"`
	Weight   *string `json:"weight,omitempty"`
	Price    *string `json:"price,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
}

// Patch is the validated, normalized form of EditInput.
type Patch struct {
	Name     *string
	Weight   *string
	Price    *string
	Quantity *int64
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Weight == nil && p.Price == nil && p.Quantity == nil
}
