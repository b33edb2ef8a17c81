package generation

// BuildReceiptPrompt returns the prompt asking the model to restate OCR text
// as a receipt JSON object.
func BuildReceiptPrompt(ocrText string) string {
	return `You are given raw text extracted by OCR from a retail receipt. Rewrite it as a single JSON object with exactly this structure:

{
  "imageQuality": "Good quality image" or "Poor quality image",
  "storeName": "",
  "storePhone": "",
  "storeAddress": "",
  "purchaseDate": "MM/DD/YYYY",
  "purchaseTime": "H:MM AM/PM",
  "totalPaid": "0.00",
  "products": [
    {
      "description": "",
      "code": "",
      "quantity": 1,
      "price": "0.00"
    }
  ]
}

Rules:
- Use null for any value you cannot read with confidence. Never invent values.
- Prices and totals are strings of digits with a dot as decimal separator, no currency symbol.
- quantity is a whole number.
- imageQuality is "Poor quality image" when the text is mostly unreadable.
- Answer with the JSON object only, no commentary.

OCR text:
` + ocrText
}
