package models

// Category labels transactions. (Name, Type) is unique per user; inactive
// categories stay selectable for historical entries but are excluded from
// "new transaction" choices and activity-filtered breakdowns.
type Category struct {
	ID       string
	Name     string
	Type     TransactionType
	Color    string
	IsActive bool
}

// LegacyDefaultCategories is the localized category set that pre-dates
// remote category storage. It seeds accounts that already have transaction
// history but an empty category collection, and serves as the in-memory
// fallback when the category fetch or seeding insert fails.
func LegacyDefaultCategories() []Category {
	return []Category{
		{ID: "inc1", Name: "급여", Type: TypeIncome, Color: "#10b981", IsActive: true},
		{ID: "inc2", Name: "용돈", Type: TypeIncome, Color: "#3b82f6", IsActive: true},
		{ID: "inc3", Name: "기타 수입", Type: TypeIncome, Color: "#6366f1", IsActive: true},
		{ID: "exp1", Name: "식품", Type: TypeExpense, Color: "#ef4444", IsActive: true},
		{ID: "exp2", Name: "외식", Type: TypeExpense, Color: "#f97316", IsActive: true},
		{ID: "exp3", Name: "교육", Type: TypeExpense, Color: "#f59e0b", IsActive: true},
		{ID: "exp4", Name: "헌금", Type: TypeExpense, Color: "#eab308", IsActive: true},
		{ID: "exp5", Name: "주거", Type: TypeExpense, Color: "#84cc16", IsActive: true},
		{ID: "exp6", Name: "의류", Type: TypeExpense, Color: "#22c55e", IsActive: true},
		{ID: "exp7", Name: "건강", Type: TypeExpense, Color: "#14b8a6", IsActive: true},
		{ID: "exp8", Name: "교통", Type: TypeExpense, Color: "#06b6d4", IsActive: true},
		{ID: "exp9", Name: "보험", Type: TypeExpense, Color: "#0ea5e9", IsActive: true},
		{ID: "exp10", Name: "IT", Type: TypeExpense, Color: "#3b82f6", IsActive: true},
		{ID: "exp11", Name: "기부", Type: TypeExpense, Color: "#8b5cf6", IsActive: true},
		{ID: "exp12", Name: "선물", Type: TypeExpense, Color: "#d946ef", IsActive: true},
		{ID: "exp13", Name: "애견", Type: TypeExpense, Color: "#ec4899", IsActive: true},
	}
}

// StarterCategories seeds brand-new accounts (no transaction history at all).
func StarterCategories() []Category {
	return []Category{
		{ID: "starter-inc1", Name: "Salary", Type: TypeIncome, Color: "#10b981", IsActive: true},
		{ID: "starter-inc2", Name: "Allowance", Type: TypeIncome, Color: "#3b82f6", IsActive: true},
		{ID: "starter-inc3", Name: "Other Income", Type: TypeIncome, Color: "#6366f1", IsActive: true},
		{ID: "starter-exp1", Name: "Groceries", Type: TypeExpense, Color: "#ef4444", IsActive: true},
		{ID: "starter-exp2", Name: "Dining Out", Type: TypeExpense, Color: "#f97316", IsActive: true},
		{ID: "starter-exp3", Name: "Housing", Type: TypeExpense, Color: "#84cc16", IsActive: true},
		{ID: "starter-exp4", Name: "Transport", Type: TypeExpense, Color: "#06b6d4", IsActive: true},
		{ID: "starter-exp5", Name: "Health", Type: TypeExpense, Color: "#14b8a6", IsActive: true},
		{ID: "starter-exp6", Name: "Shopping", Type: TypeExpense, Color: "#22c55e", IsActive: true},
		{ID: "starter-exp7", Name: "Entertainment", Type: TypeExpense, Color: "#8b5cf6", IsActive: true},
		{ID: "starter-exp8", Name: "Other", Type: TypeExpense, Color: "#ec4899", IsActive: true},
	}
}
