package keys

// HelpCategory organizes keys by function
type HelpCategory string

const (
	HelpCategoryLayout     HelpCategory = "Layout"
	HelpCategoryNavigation HelpCategory = "Navigation"
	HelpCategoryOther      HelpCategory = "Other"
	HelpCategoryUncategory HelpCategory = "Uncategorized" // For keys without categories
)

// CategoryOrder defines the display order for help screens
var CategoryOrder = []HelpCategory{
	HelpCategoryNavigation,
	HelpCategoryLayout,
	HelpCategoryOther,
	HelpCategoryUncategory,
}

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string
	Category    HelpCategory
}

// KeyHelpMap maps logical keys to their help information
var KeyHelpMap = map[LogicalKey]KeyHelpInfo{
	Escape: {Description: "Close the topmost open layer (dialog, drawer, menu) or clear the page", Category: HelpCategoryNavigation},
	Enter:  {Description: "Activate the highlighted item", Category: HelpCategoryNavigation},
	Up:     {Description: "Move the highlight up (Vim k supported)", Category: HelpCategoryNavigation},
	Down:   {Description: "Move the highlight down (Vim j supported)", Category: HelpCategoryNavigation},

	ToggleCompact: {Description: "Switch the sidebar between expanded and compact", Category: HelpCategoryLayout},
	ToggleLock:    {Description: "Pin the sidebar expanded, or release the pin", Category: HelpCategoryLayout},
	ToggleDrawer:  {Description: "Open or close the navigation drawer on narrow terminals", Category: HelpCategoryLayout},

	ToggleMenu: {Description: "Open or close the user menu", Category: HelpCategoryOther},
	OpenModal:  {Description: "Open the example dialog", Category: HelpCategoryOther},
	Help:       {Description: "Show help screen", Category: HelpCategoryOther},
	Quit:       {Description: "Quit the application", Category: HelpCategoryOther},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(k LogicalKey) KeyHelpInfo {
	info, exists := KeyHelpMap[k]
	if !exists {
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUncategory,
		}
	}
	return info
}

// GetCategoryPriority returns the display priority for a category (lower = higher priority)
func GetCategoryPriority(category HelpCategory) int {
	for i, cat := range CategoryOrder {
		if cat == category {
			return i
		}
	}
	return len(CategoryOrder)
}
