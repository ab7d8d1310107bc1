package i18n

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should successfully create translations with valid language", func(t *testing.T) {
		// act
		trans, err := NewTranslations("es")

		// assert
		require.NoError(t, err)
		assert.Equal(t, "es", trans.Language())
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should fail with unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("fr")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	require.NoError(t, trans.SetLanguage("ru"))
	assert.Equal(t, "ru", trans.Language())

	err = trans.SetLanguage("xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
	assert.Equal(t, "ru", trans.Language())
}

func TestLanguages(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "es", "ru"}, trans.Languages())
}

func TestGetMessage(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		assert.Equal(t, "Estimated cost", trans.GetMessage("estimated_cost", 0, nil))
		assert.Equal(t, "Report saved to data/x.csv", trans.GetMessage("report_saved", 0, map[string]interface{}{"Path": "data/x.csv"}))
	})

	t.Run("english plurals", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		assert.Equal(t, "1 file", trans.GetMessage("files_count", 1, nil))
		assert.Equal(t, "4 files", trans.GetMessage("files_count", 4, nil))
		assert.Equal(t, "0 files", trans.GetMessage("files_count", 0, nil))
	})

	t.Run("russian plurals", func(t *testing.T) {
		trans, err := NewTranslations("ru")
		require.NoError(t, err)

		assert.Equal(t, "1 файл", trans.GetMessage("files_count", 1, nil))
		assert.Equal(t, "3 файла", trans.GetMessage("files_count", 3, nil))
		assert.Equal(t, "5 файлов", trans.GetMessage("files_count", 5, nil))
		assert.Equal(t, "21 файл", trans.GetMessage("files_count", 21, nil))
		assert.Equal(t, "Ветка", trans.GetMessage("report_branch", 0, nil))
	})

	t.Run("missing message", func(t *testing.T) {
		trans, err := NewTranslations("es")
		require.NoError(t, err)

		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})
}

func TestLocalesDefineSameMessages(t *testing.T) {
	files, err := fs.Glob(localeFS, "locales/active.*.toml")
	require.NoError(t, err)
	require.Len(t, files, 3)

	ids := func(file string) []string {
		data, err := fs.ReadFile(localeFS, file)
		require.NoError(t, err)

		var messages map[string]interface{}
		require.NoError(t, toml.Unmarshal(data, &messages))

		keys := make([]string, 0, len(messages))
		for k := range messages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	reference := ids(files[0])
	for _, file := range files[1:] {
		assert.Equal(t, reference, ids(file), file)
	}
}
