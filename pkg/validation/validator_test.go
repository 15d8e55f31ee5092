package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type profileForm struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Title    string `json:"title" binding:"max=5"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(profileForm{Username: "a/b", Email: "nope", Title: "too long"})
	details := ToDetails(err)

	assert.Equal(t, "must be 1-150 characters without / ? # %", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at most 5 characters long", details["title"])
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var dst struct {
		CategoryID int64     `json:"category_id"`
		PubDate    time.Time `json:"pub_date"`
	}

	err := json.Unmarshal([]byte(`{"category_id":"x"}`), &dst)
	assert.Equal(t, map[string]string{"category_id": "must be a int64"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"pub_date":"yesterday"}`), &dst)
	assert.Contains(t, ToDetails(err)["payload"], "RFC 3339")

	err = json.Unmarshal([]byte(`{`), &dst)
	assert.Equal(t, "invalid json", ToDetails(err)["payload"])
}
