package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeRe = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// backends runs fn against every Backend implementation.
func backends(t *testing.T, fn func(t *testing.T, be Backend)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
	t.Run("bolt", func(t *testing.T) {
		b, err := OpenBolt(t.TempDir()+"/", "portal", DefaultBuckets.All()...)
		require.NoError(t, err)
		t.Cleanup(func() { b.Close() })
		fn(t, b)
	})
}

func TestBackendContract(t *testing.T) {
	backends(t, func(t *testing.T, be Backend) {
		_, err := be.Get(DefaultBuckets.Referral, "nope")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, be.Put(DefaultBuckets.Referral, "k", []byte("v")))
		v, err := be.Get(DefaultBuckets.Referral, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(v))

		require.NoError(t, be.Delete(DefaultBuckets.Referral, "k"))
		require.NoError(t, be.Delete(DefaultBuckets.Referral, "k"))
		_, err = be.Get(DefaultBuckets.Referral, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReferralCodeIsStable(t *testing.T) {
	backends(t, func(t *testing.T, be Backend) {
		st := New(be, DefaultBuckets)

		first, err := st.Referrals.Code("profile-1")
		require.NoError(t, err)
		assert.Regexp(t, codeRe, first)

		// a "reload" builds a new Store over the same backend
		again, err := New(be, DefaultBuckets).Referrals.Code("profile-1")
		require.NoError(t, err)
		assert.Equal(t, first, again)

		other, err := st.Referrals.Code("profile-2")
		require.NoError(t, err)
		assert.Regexp(t, codeRe, other)

		require.NoError(t, st.Referrals.Clear("profile-1"))
		_, err = be.Get(DefaultBuckets.Referral, "profile-1")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = st.Referrals.Code("")
		assert.ErrorIs(t, err, ErrMissingProfile)
	})
}

func TestReferralCodeSurvivesReopen(t *testing.T) {
	dir := t.TempDir() + "/"

	b, err := OpenBolt(dir, "portal", DefaultBuckets.All()...)
	require.NoError(t, err)
	code, err := New(b, DefaultBuckets).Referrals.Code("p")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b, err = OpenBolt(dir, "portal", DefaultBuckets.All()...)
	require.NoError(t, err)
	defer b.Close()
	again, err := New(b, DefaultBuckets).Referrals.Code("p")
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestShortlist(t *testing.T) {
	backends(t, func(t *testing.T, be Backend) {
		sl := New(be, DefaultBuckets).Shortlist

		ids, err := sl.List("p")
		require.NoError(t, err)
		assert.Empty(t, ids)

		for _, id := range []string{"a", "b", "c"} {
			added, err := sl.Add("p", id)
			require.NoError(t, err)
			assert.True(t, added)
		}
		added, err := sl.Add("p", "b")
		require.NoError(t, err)
		assert.False(t, added, "duplicates are ignored")

		ids, err = sl.List("p")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids)

		ok, err := sl.Contains("p", "c")
		require.NoError(t, err)
		assert.True(t, ok)

		removed, err := sl.Remove("p", "b")
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = sl.Remove("p", "zzz")
		require.NoError(t, err)
		assert.False(t, removed)

		ids, err = sl.List("p")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids)

		other, err := sl.List("q")
		require.NoError(t, err)
		assert.Empty(t, other, "profiles don't share a shortlist")

		require.NoError(t, sl.Clear("p"))
		ids, err = sl.List("p")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestCredentials(t *testing.T) {
	backends(t, func(t *testing.T, be Backend) {
		st := New(be, DefaultBuckets)
		creds := st.Credentials("p")

		tok, err := creds.Token()
		require.NoError(t, err)
		assert.Empty(t, tok)

		require.NoError(t, creds.Set("secret"))
		tok, err = st.Credentials("p").Token()
		require.NoError(t, err)
		assert.Equal(t, "secret", tok)

		tok, err = st.Credentials("other").Token()
		require.NoError(t, err)
		assert.Empty(t, tok)

		require.NoError(t, creds.Clear())
		tok, err = creds.Token()
		require.NoError(t, err)
		assert.Empty(t, tok)

		assert.ErrorIs(t, st.Credentials("").Set("x"), ErrMissingProfile)
	})
}
