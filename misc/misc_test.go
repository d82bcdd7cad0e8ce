package misc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := RandomCode(8, CodeAlphabet)
		require.NoError(t, err)
		require.Len(t, code, 8)
		assert.Empty(t, strings.Trim(code, CodeAlphabet), code)
		seen[code] = true
	}
	assert.Len(t, seen, 100)
}

func TestDB(t *testing.T) {
	dir := t.TempDir() + string(os.PathSeparator)
	db, err := OpenDB(dir, "misc")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitBuckets(db, "a", "b"))

	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return PutBucketBytes(tx, "a", "k", []byte("v"))
	}))
	require.NoError(t, db.View(func(tx *bolt.Tx) error {
		v, err := GetBucketBytes(tx, "a", "k")
		assert.Equal(t, []byte("v"), v)
		v, _ = GetBucketBytes(tx, "b", "k")
		assert.Nil(t, v)
		_, err2 := GetBucketBytes(tx, "zz", "k")
		assert.True(t, errors.Is(err2, ErrNoBucket))
		return err
	}))
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return DelBucketBytes(tx, "a", "k")
	}))
	require.NoError(t, db.View(func(tx *bolt.Tx) error {
		v, err := GetBucketBytes(tx, "a", "k")
		assert.Nil(t, v)
		return err
	}))
}

func TestCookies(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, "", "profile", "abc", true, time.Hour)
	ck := w.Result().Cookies()
	require.Len(t, ck, 1)
	assert.Equal(t, "abc", ck[0].Value)
	assert.True(t, ck[0].HttpOnly)
	assert.True(t, ck[0].Secure)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "profile", Value: "abc"})
	assert.Equal(t, "abc", GetCookie(r, "profile"))
	assert.Empty(t, GetCookie(r, "other"))

	w = httptest.NewRecorder()
	RefreshCookie(w, r, "", "profile", false, time.Hour)
	RefreshCookie(w, r, "", "other", false, time.Hour)
	ck = w.Result().Cookies()
	require.Len(t, ck, 1)
	assert.Equal(t, "abc", ck[0].Value)
}

func TestJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"id":"x"}`))

	var in struct{ ID string }
	require.NoError(t, BindJSON(c, &in))
	assert.Equal(t, "x", in.ID)

	AbortWithErr(c, http.StatusTeapot, errors.New("Nope"))
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"status":"error","msg":"Nope"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	require.NoError(t, WriteJSON(c, http.StatusOK, StatusOK("42")))
	assert.JSONEq(t, `{"status":"success","id":"42"}`, w.Body.String())
}
