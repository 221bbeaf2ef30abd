package models

// Category is the fixed transaction type set every transaction is assigned
// to. The set is closed: classification never invents a value outside it.
type Category string

// The complete category set.
const (
	CategoryBuyGoods        Category = "BuyGoods"
	CategoryPayBill         Category = "PayBill"
	CategoryPochiLaBiashara Category = "PochiLaBiashara"
	CategoryTransfer        Category = "Transfer"
	CategoryReceivedMoney   Category = "ReceivedMoney"
	CategoryCashWithdrawal  Category = "CashWithdrawal"
	CategoryAirtimeBundles  Category = "AirtimeOrBundles"
	CategoryDeposit         Category = "Deposit"
	CategoryUncategorized   Category = "Uncategorized"
)

// AllCategories lists every category in presentation order.
var AllCategories = []Category{
	CategoryBuyGoods,
	CategoryPayBill,
	CategoryPochiLaBiashara,
	CategoryTransfer,
	CategoryReceivedMoney,
	CategoryCashWithdrawal,
	CategoryAirtimeBundles,
	CategoryDeposit,
	CategoryUncategorized,
}

// IsValid reports whether c belongs to the fixed category set.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Subcategory labels refine a category without leaving the closed set.
const (
	SubcategoryCharge     = "charge"
	SubcategoryTransfer   = "transfer"
	SubcategoryWithdrawal = "withdrawal"
	SubcategoryPurchase   = "purchase"
	SubcategoryDeposit    = "deposit"
)

// Direction reports which way money moved in a transaction.
type Direction string

const (
	DirectionIn      Direction = "in"
	DirectionOut     Direction = "out"
	DirectionUnknown Direction = "unknown"
)
