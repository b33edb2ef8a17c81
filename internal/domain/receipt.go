package domain

// ReceiptRecord is the structured form of one scanned receipt. Every scalar is
// nullable: a value the pipeline could not confirm is nil, never a guess.
type ReceiptRecord struct {
	ImageQuality *string   `json:"imageQuality"`
	StoreName    *string   `json:"storeName"`
	StorePhone   *string   `json:"storePhone"`
	StoreAddress *string   `json:"storeAddress"`
	PurchaseDate *string   `json:"purchaseDate"`
	PurchaseTime *string   `json:"purchaseTime"`
	TotalPaid    *string   `json:"totalPaid"`
	Products     []Product `json:"products"`
}

// Product is one line item of a receipt.
type Product struct {
	Description *string `json:"description"`
	Code        *string `json:"code"`
	Quantity    *int    `json:"quantity"`
	Price       *string `json:"price"`
}
