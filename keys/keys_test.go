package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryMappedKeyHasBindingAndHelp(t *testing.T) {
	for raw, k := range GlobalKeyStringsMap {
		_, ok := GlobalkeyBindings[k]
		assert.True(t, ok, "raw key %q maps to %q which has no binding", raw, k)
		assert.NotEqual(t, HelpCategoryUncategory, GetKeyHelp(k).Category, "%q has no help entry", k)
	}
}

func TestBindingKeysAgreeWithRawTable(t *testing.T) {
	for k, b := range GlobalkeyBindings {
		for _, raw := range b.Keys() {
			assert.Equal(t, k, GlobalKeyStringsMap[raw], "binding for %q lists %q", k, raw)
		}
	}
}

func TestParse(t *testing.T) {
	k, ok := Parse("escape")
	assert.True(t, ok)
	assert.Equal(t, Escape, k)

	_, ok = Parse("esc")
	assert.False(t, ok, "raw strings are not logical names")
}

func TestRawKeysFor(t *testing.T) {
	assert.Equal(t, []string{"ctrl+c", "q"}, RawKeysFor(GlobalKeyStringsMap, Quit))
	assert.Empty(t, RawKeysFor(map[string]LogicalKey{}, Escape))
}

func TestGetKeyHelpUnknown(t *testing.T) {
	info := GetKeyHelp(LogicalKey("nope"))
	assert.Equal(t, HelpCategoryUncategory, info.Category)
	assert.Equal(t, "No description", info.Description)
}

func TestCategoryPriority(t *testing.T) {
	assert.Less(t, GetCategoryPriority(HelpCategoryNavigation), GetCategoryPriority(HelpCategoryLayout))
	assert.Equal(t, len(CategoryOrder), GetCategoryPriority(HelpCategory("missing")))
}
