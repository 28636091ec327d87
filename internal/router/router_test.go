package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"microapi-go/internal/i18n"
	"microapi-go/internal/testutil"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.SetupTestDB(t)

	bundle, err := i18n.InitI18n("en")
	require.NoError(t, err)
	return New(zap.NewNop(), bundle, "en")
}

func postForm(r http.Handler, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRequest(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestShortURLScenario(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/shorturl", url.Values{"url": {"https://example.com"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"original_url":"https://example.com","short_url":1}`, w.Body.String())

	w = postForm(r, "/api/shorturl", url.Values{"url": {"https://example.com"}})
	assert.JSONEq(t, `{"original_url":"https://example.com","short_url":1}`, w.Body.String())

	w = postForm(r, "/api/shorturl", url.Values{"url": {"ftp://x"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"invalid url"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/shorturl/1", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Location"))

	w = doRequest(r, http.MethodGet, "/api/shorturl/99", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"No short URL found"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/shorturl/abc", "", "")
	assert.JSONEq(t, `{"error":"No short URL found"}`, w.Body.String())
}

func TestCreateShortURL_JSONAndMissingURL(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/shorturl", "application/json", `{"url":"http://json.example"}`)
	assert.JSONEq(t, `{"original_url":"http://json.example","short_url":1}`, w.Body.String())

	w = postForm(r, "/api/shorturl", url.Values{})
	assert.JSONEq(t, `{"error":"invalid url"}`, w.Body.String())
}

func TestErrorTextStaysEnglishUnderOtherLanguages(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/shorturl", url.Values{"url": {"ftp://x"}}, "Accept-Language", "zh-CN,zh;q=0.9")
	assert.JSONEq(t, `{"error":"invalid url","message":"无效的网址"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/shorturl/99", nil)
	req.Header.Set("Accept-Language", "zh")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "No short URL found", decode(t, w)["error"])

	w = postForm(r, "/api/shorturl", url.Values{"url": {"ftp://x"}}, "Accept-Language", "fr-FR")
	assert.JSONEq(t, `{"error":"invalid url"}`, w.Body.String())

	w = postForm(r, "/api/books", url.Values{}, "Accept-Language", "zh")
	assert.Equal(t, "missing required field title", w.Body.String())

	w = postForm(r, "/api/issues/apitest", url.Values{
		"issue_title": {"Title"}, "issue_text": {"text"}, "created_by": {"joe"},
	})
	id, _ := decode(t, w)["_id"].(string)
	require.NotEmpty(t, id)

	req = httptest.NewRequest(http.MethodDelete, "/api/issues/apitest", strings.NewReader(url.Values{"_id": {id}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "zh")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	body := decode(t, w)
	assert.Equal(t, "successfully deleted", body["result"])
	assert.Equal(t, id, body["_id"])
	assert.NotEmpty(t, body["message"])

	w = postForm(r, "/api/books", url.Values{"title": {"Dune"}})
	bookID, _ := decode(t, w)["_id"].(string)
	req = httptest.NewRequest(http.MethodDelete, "/api/books/"+bookID, nil)
	req.Header.Set("Accept-Language", "zh")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "delete successful", w.Body.String())
}

func TestShortURLStats(t *testing.T) {
	r := setupRouter(t)

	postForm(r, "/api/shorturl", url.Values{"url": {"https://example.com"}})
	w := doRequest(r, http.MethodGet, "/api/shorturl/1/stats", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "https://example.com", body["original_url"])
	assert.Equal(t, float64(1), body["short_url"])
	assert.Equal(t, float64(0), body["visits"])

	w = doRequest(r, http.MethodGet, "/api/shorturl/5/stats", "", "")
	assert.JSONEq(t, `{"error":"No short URL found"}`, w.Body.String())
}

func TestTimestampAndWhoAmI(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/timestamp/2015-12-25", "", "")
	assert.JSONEq(t, `{"unix":1451001600000,"utc":"Fri, 25 Dec 2015 00:00:00 GMT"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/timestamp/1451001600000", "", "")
	assert.JSONEq(t, `{"unix":1451001600000,"utc":"Fri, 25 Dec 2015 00:00:00 GMT"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/timestamp/not-a-date", "", "")
	assert.JSONEq(t, `{"error":"Invalid Date"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/timestamp", "", "")
	body := decode(t, w)
	assert.NotZero(t, body["unix"])

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("User-Agent", "curl/8.0")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"ipaddress":"203.0.113.7","language":"en-US","software":"curl/8.0"}`, w.Body.String())
}

func TestExerciseTracker(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/users", url.Values{"username": {"fcc"}})
	user := decode(t, w)
	id, _ := user["_id"].(string)
	require.NotEmpty(t, id)

	w = postForm(r, "/api/users", url.Values{})
	assert.JSONEq(t, `{"error":"username is required"}`, w.Body.String())

	w = postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"run"}, "duration": {"30"}, "date": {"2021-01-01"},
	})
	assert.JSONEq(t, `{"username":"fcc","description":"run","duration":30,"date":"Fri Jan 01 2021","_id":"`+id+`"}`, w.Body.String())

	w = postForm(r, "/api/users/unknown/exercises", url.Values{"description": {"run"}, "duration": {"30"}})
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/users/"+id+"/logs?from=2020-12-01&limit=5", "", "")
	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Len(t, body["log"], 1)

	w = doRequest(r, http.MethodGet, "/api/users", "", "")
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestFileAnalyse(t *testing.T) {
	r := setupRouter(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("upfile", "hello.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := doRequest(r, http.MethodPost, "/api/fileanalyse", mw.FormDataContentType(), body.String())
	assert.JSONEq(t, `{"name":"hello.txt","type":"application/octet-stream","size":11}`, w.Body.String())

	w = postForm(r, "/api/fileanalyse", url.Values{})
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())
}

func TestLibrary(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/books", url.Values{"title": {"Dune"}})
	book := decode(t, w)
	id, _ := book["_id"].(string)
	require.NotEmpty(t, id)

	w = postForm(r, "/api/books", url.Values{})
	assert.Equal(t, "missing required field title", w.Body.String())

	w = postForm(r, "/api/books/"+id, url.Values{"comment": {"classic"}})
	assert.JSONEq(t, `{"_id":"`+id+`","title":"Dune","comments":["classic"]}`, w.Body.String())

	w = postForm(r, "/api/books/"+id, url.Values{})
	assert.Equal(t, "missing required field comment", w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/books", "", "")
	assert.JSONEq(t, `[{"_id":"`+id+`","title":"Dune","commentcount":1}]`, w.Body.String())

	w = doRequest(r, http.MethodDelete, "/api/books/"+id, "", "")
	assert.Equal(t, "delete successful", w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/books/"+id, "", "")
	assert.Equal(t, "no book exists", w.Body.String())

	w = doRequest(r, http.MethodDelete, "/api/books", "", "")
	assert.Equal(t, "complete delete successful", w.Body.String())
}

func TestIssueTracker(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/issues/apitest", url.Values{
		"issue_title": {"Title"}, "issue_text": {"text"}, "created_by": {"joe"},
	})
	issue := decode(t, w)
	id, _ := issue["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, true, issue["open"])
	assert.Equal(t, "", issue["assigned_to"])

	w = postForm(r, "/api/issues/apitest", url.Values{"issue_title": {"Title"}})
	assert.JSONEq(t, `{"error":"required field(s) missing"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/issues/apitest?created_by=joe", "", "")
	var issues []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
	assert.Len(t, issues, 1)

	form := "application/x-www-form-urlencoded"
	w = doRequest(r, http.MethodPut, "/api/issues/apitest", form, url.Values{"_id": {id}, "status_text": {"wip"}}.Encode())
	assert.JSONEq(t, `{"result":"successfully updated","_id":"`+id+`"}`, w.Body.String())

	w = doRequest(r, http.MethodPut, "/api/issues/apitest", form, url.Values{"_id": {id}}.Encode())
	assert.JSONEq(t, `{"error":"no update field(s) sent","_id":"`+id+`"}`, w.Body.String())

	w = doRequest(r, http.MethodPut, "/api/issues/apitest", "application/json", `{"issue_text":"x"}`)
	assert.JSONEq(t, `{"error":"missing _id"}`, w.Body.String())

	w = doRequest(r, http.MethodDelete, "/api/issues/apitest", form, url.Values{"_id": {id}}.Encode())
	assert.JSONEq(t, `{"result":"successfully deleted","_id":"`+id+`"}`, w.Body.String())

	w = doRequest(r, http.MethodDelete, "/api/issues/apitest", form, url.Values{"_id": {id}}.Encode())
	assert.JSONEq(t, `{"error":"could not delete","_id":"`+id+`"}`, w.Body.String())
}

func TestCorsPreflight(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodOptions, "/api/shorturl", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
