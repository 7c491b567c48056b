package relationship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/relationship"
)

func TestDefaultViper(t *testing.T) {
	t.Parallel()

	vip := relationship.DefaultViper()
	assert.NotEmpty(t, vip)

	// This test enforces the default values, so whenever they change,
	// make sure to also update the example config file!

	conf := relationship.Config{}
	err := vip.Unmarshal(&conf)
	assert.NoError(t, err)

	assert.Empty(t, conf.Relations)
	assert.Empty(t, conf.Plurals)
}

func TestDefaultViper_CustomTypes(t *testing.T) {
	t.Parallel()

	t.Run("invalid cardinality", func(t *testing.T) {
		t.Parallel()

		vip := relationship.DefaultViper()
		vip.SetConfigFile("./testdata/config/invalid-cardinality.yaml")
		err := vip.ReadInConfig()
		assert.NoError(t, err)

		conf := relationship.Config{}

		err = vip.Unmarshal(&conf)
		assert.Error(t, err, "should fail when using unsupported enum values")
		assert.Contains(t, err.Error(), "use one of: ", "error message should list out all accepted cardinalities")
	})

	t.Run("valid cardinality", func(t *testing.T) {
		t.Parallel()

		vip := relationship.DefaultViper()
		vip.SetConfigFile("./testdata/config/library.yaml")
		err := vip.ReadInConfig()
		assert.NoError(t, err)

		conf := relationship.Config{}

		err = vip.Unmarshal(&conf)
		assert.NoError(t, err)
		require.Len(t, conf.Relations, 4)
		assert.Equal(t, relationship.ToMany, conf.Relations[1].Cardinality, "cardinality should be case insensitive")
		assert.Equal(t, relationship.ToOne, conf.Relations[2].Cardinality)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("load file", func(t *testing.T) {
		t.Parallel()

		conf, err := relationship.LoadConfig("./testdata/config/library.yaml")
		require.NoError(t, err)

		assert.Len(t, conf.Relations, 4)
		assert.Equal(t, "Book", conf.Relations[0].Owner)
		assert.Equal(t, "authors", conf.Relations[0].Property)
		assert.Equal(t, "Author", conf.Relations[0].Target)
		assert.Equal(t, "books", conf.Relations[0].Inverse)
		assert.Equal(t, map[string]string{"octopus": "octopodes"}, conf.Plurals)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := relationship.LoadConfig("./testdata/config/does-not-exist.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid cardinality", func(t *testing.T) {
		t.Parallel()

		_, err := relationship.LoadConfig("./testdata/config/invalid-cardinality.yaml")
		assert.Error(t, err)
	})

	t.Run("incomplete relation", func(t *testing.T) {
		t.Parallel()

		_, err := relationship.LoadConfig("./testdata/config/incomplete.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "Inverse")
		assert.Contains(t, err.Error(), "required")
	})
}

func TestConfig_Registry(t *testing.T) {
	t.Parallel()

	t.Run("valid relations", func(t *testing.T) {
		t.Parallel()

		conf, err := relationship.LoadConfig("./testdata/config/library.yaml")
		require.NoError(t, err)

		reg, err := conf.Registry()
		require.NoError(t, err)

		rel, found := reg.Lookup("Passport", "holder")
		assert.True(t, found)
		assert.Equal(t, "Person", rel.Target)
		assert.Equal(t, "passport", rel.Inverse)
	})

	t.Run("mismatched relations", func(t *testing.T) {
		t.Parallel()

		conf, err := relationship.LoadConfig("./testdata/config/mismatched.yaml")
		require.NoError(t, err)

		_, err = conf.Registry()
		assert.ErrorIs(t, err, relationship.ErrInvalidRelation)

		_, err = conf.Options()
		assert.ErrorIs(t, err, relationship.ErrInvalidRelation)
	})
}

func TestConfig_Pluralizer(t *testing.T) {
	t.Parallel()

	conf := relationship.Config{Plurals: map[string]string{"octopus": "octopodes"}}

	assert.Equal(t, "octopodes", conf.Pluralizer().Plural("octopus"))
	assert.Equal(t, "authors", conf.Pluralizer().Plural("author"))
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	conf, err := relationship.LoadConfig("./testdata/config/library.yaml")
	require.NoError(t, err)

	opts, err := conf.Options()
	require.NoError(t, err)

	t.Run("configured relation", func(t *testing.T) {
		t.Parallel()

		syncer := relationship.New(opts...)
		book, author := newBook(), newAuthor()

		err := syncer.Add(ctx, book, "authors", author)
		assert.NoError(t, err)

		assert.True(t, book.Authors.Contains(author))
		assert.Equal(t, []*Book{book}, author.Books)
	})

	t.Run("configured inverse overrides the type name", func(t *testing.T) {
		t.Parallel()

		syncer := relationship.New(opts...)
		person, passport := newPerson(), newPassport()

		// Passport has no holder property, so the configured inverse can not be resolved.
		err := syncer.Set(ctx, person, "passport", passport)
		assert.ErrorIs(t, err, relationship.ErrUnknownMember)

		assert.Nil(t, person.Passport, "nothing is changed, if any side fails to resolve")
		assert.Nil(t, passport.Person)
	})
}
