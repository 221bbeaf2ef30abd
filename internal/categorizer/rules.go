package categorizer

import (
	"strings"

	"mpesalytics/engine/internal/models"
	"mpesalytics/engine/internal/textutils"
)

// ruleInput carries the pre-normalized pieces a rule matches against.
type ruleInput struct {
	// Norm is the trimmed, uppercased, whitespace-collapsed description.
	Norm string
	// TypePart and Entity are the halves around the " - " separator;
	// both equal Norm when the description has no separator.
	TypePart string
	Entity   string
	// Direction of the money movement for this row.
	Direction models.Direction
}

// rule is one entry of the ordered dispatch table: a matcher, the category
// it assigns, and a counterparty extractor. Evaluation is top to bottom,
// first match wins, so ordering is part of the contract.
type rule struct {
	name    string
	matches func(in ruleInput) bool
	apply   func(in ruleInput) models.Classification
}

// builtinRules is the fixed rule table distilled from observed statement
// description templates. It is an approximation: unseen templates fall
// through to the Uncategorized fallback rather than risking a wrong
// specific category.
var builtinRules = []rule{
	{
		name: "received-money",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "FUNDS RECEIVED FROM") ||
				strings.Contains(in.Norm, "MERCHANT CUSTOMER PAYMENT FROM") ||
				strings.Contains(in.Norm, "SALARY PAYMENT FROM") ||
				strings.Contains(in.Norm, "PROMOTION PAYMENT FROM") ||
				strings.Contains(in.Norm, "BUSINESS PAYMENT FROM")
		},
		apply: func(in ruleInput) models.Classification {
			name, phone := personCounterparty(in, "FROM")
			sub := ""
			if !strings.Contains(in.Norm, "FUNDS RECEIVED FROM") {
				sub = "business"
			}
			return models.Classification{
				Category:     models.CategoryReceivedMoney,
				Subcategory:  sub,
				Counterparty: name,
				AccountNo:    phone,
			}
		},
	},
	{
		name: "pochi-la-biashara",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "PAYMENT TO SMALL BUSINESS") ||
				strings.Contains(in.Norm, "POCHI")
		},
		apply: func(in ruleInput) models.Classification {
			label := "TO"
			if in.Direction == models.DirectionIn {
				label = "FROM"
			}
			name, phone := personCounterparty(in, label)
			return models.Classification{
				Category:     models.CategoryPochiLaBiashara,
				Subcategory:  "pochi",
				Counterparty: name,
				AccountNo:    phone,
				IsCharge:     strings.Contains(in.Norm, "CHARGE"),
			}
		},
	},
	{
		name: "pay-bill",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "PAY BILL") ||
				strings.Contains(in.Norm, "PAYBILL")
		},
		apply: func(in ruleInput) models.Classification {
			entity := in.Entity
			if entity == in.Norm {
				// No separator: the biller name follows the "TO" label.
				if after := textutils.AfterToken(in.Norm, "TO"); after != "" {
					entity = after
				}
			}
			business, account := textutils.ExtractPaybillDetails(entity)
			if account == "" {
				account = textutils.TrailingNumber(business)
				business = textutils.StripTrailingNumber(business)
			}
			charge := strings.Contains(in.Norm, "CHARGE")
			return models.Classification{
				Category:     models.CategoryPayBill,
				Subcategory:  chargeSub(charge, ""),
				Counterparty: business,
				AccountNo:    account,
				IsCharge:     charge,
			}
		},
	},
	{
		name: "buy-goods",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "BUY GOODS") ||
				strings.Contains(in.Norm, "MERCHANT PAYMENT") ||
				strings.Contains(in.Norm, "PAY MERCHANT")
		},
		apply: func(in ruleInput) models.Classification {
			charge := strings.Contains(in.Norm, "CHARGE")
			return models.Classification{
				Category:     models.CategoryBuyGoods,
				Subcategory:  chargeSub(charge, ""),
				Counterparty: merchantCounterparty(in),
				IsCharge:     charge,
			}
		},
	},
	{
		name: "cash-withdrawal",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "WITHDRAW") &&
				!strings.HasPrefix(textutils.AfterToken(in.Norm, "WITHDRAWAL"), "FROM")
		},
		apply: func(in ruleInput) models.Classification {
			charge := strings.Contains(in.Norm, "CHARGE")
			return models.Classification{
				Category:     models.CategoryCashWithdrawal,
				Subcategory:  chargeSub(charge, models.SubcategoryWithdrawal),
				Counterparty: merchantCounterparty(in),
				IsCharge:     charge,
			}
		},
	},
	{
		name: "airtime-or-bundles",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "AIRTIME") ||
				strings.Contains(in.Norm, "BUNDLE")
		},
		apply: func(in ruleInput) models.Classification {
			name, phone := textutils.SplitMaskedPhone(in.Entity)
			if name == in.Norm {
				name = ""
			}
			return models.Classification{
				Category:     models.CategoryAirtimeBundles,
				Subcategory:  models.SubcategoryPurchase,
				Counterparty: name,
				AccountNo:    phone,
			}
		},
	},
	{
		name: "deposit",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "DEPOSIT") &&
				in.Direction == models.DirectionIn
		},
		apply: func(in ruleInput) models.Classification {
			return models.Classification{
				Category:     models.CategoryDeposit,
				Subcategory:  models.SubcategoryDeposit,
				Counterparty: merchantCounterparty(in),
			}
		},
	},
	{
		name: "transfer",
		matches: func(in ruleInput) bool {
			return strings.Contains(in.Norm, "CUSTOMER TRANSFER") ||
				strings.Contains(in.Norm, "SEND MONEY") ||
				strings.Contains(in.Norm, "TRANSFER TO") ||
				strings.Contains(in.Norm, "TRANSFER FROM")
		},
		apply: func(in ruleInput) models.Classification {
			category := models.CategoryTransfer
			label := "TO"
			if in.Direction == models.DirectionIn {
				category = models.CategoryReceivedMoney
				label = "FROM"
			}
			name, phone := personCounterparty(in, label)
			charge := strings.Contains(in.Norm, "CHARGE")
			return models.Classification{
				Category:     category,
				Subcategory:  chargeSub(charge, models.SubcategoryTransfer),
				Counterparty: name,
				AccountNo:    phone,
				IsCharge:     charge,
			}
		},
	},
	{
		// Products outside the fixed taxonomy degrade to Uncategorized
		// on purpose, but keep a descriptive subcategory when the
		// template is recognizable.
		name: "known-other",
		matches: func(in ruleInput) bool {
			return knownOtherSub(in.Norm) != ""
		},
		apply: func(in ruleInput) models.Classification {
			return models.Classification{
				Category:     models.CategoryUncategorized,
				Subcategory:  knownOtherSub(in.Norm),
				Counterparty: in.Norm,
			}
		},
	},
}

// knownOtherSub recognizes description templates of products that exist in
// statements but have no slot in the closed category set.
func knownOtherSub(norm string) string {
	switch {
	case strings.Contains(norm, "REVERSAL"):
		return "reversal"
	case strings.Contains(norm, "M-SHWARI"):
		return "mshwari"
	case strings.Contains(norm, "KCB M-PESA"):
		return "kcb"
	case strings.Contains(norm, "OVERDRAFT"), strings.Contains(norm, "OD LOAN"):
		return "overdraft"
	case strings.Contains(norm, "TERM LOAN"), strings.Contains(norm, "HUSTLER"):
		return "loan"
	default:
		return ""
	}
}

// personCounterparty extracts a person-style counterparty: the entity part
// when the description has a separator, otherwise the text after the
// given label token. Masked phone prefixes are split off and trailing
// phone numbers stripped.
func personCounterparty(in ruleInput, label string) (name, phone string) {
	candidate := in.Entity
	if candidate == in.Norm {
		if after := textutils.AfterToken(in.Norm, label); after != "" {
			candidate = after
		}
	}
	name, phone = textutils.SplitMaskedPhone(candidate)
	if phone == "" {
		phone = textutils.TrailingNumber(name)
	}
	name = textutils.StripTrailingNumber(name)
	return name, phone
}

// merchantCounterparty extracts a merchant/agent counterparty: the entity
// part when present, otherwise the text after a till label with its till
// number removed.
func merchantCounterparty(in ruleInput) string {
	if in.Entity != in.Norm {
		return textutils.StripLeadingNumber(in.Entity)
	}
	if after := textutils.AfterToken(in.Norm, "TILL"); after != "" {
		return textutils.StripLeadingNumber(after)
	}
	if after := textutils.AfterToken(in.Norm, "TO"); after != "" {
		return textutils.StripTrailingNumber(after)
	}
	return ""
}

func chargeSub(isCharge bool, fallback string) string {
	if isCharge {
		return models.SubcategoryCharge
	}
	return fallback
}
