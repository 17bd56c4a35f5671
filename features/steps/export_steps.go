//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	appexport "ee-export/application/export"
	"ee-export/cmd"
	"ee-export/domain/export"
	"ee-export/infrastructure/cloudapi"

	"github.com/cucumber/godog"
)

// fakeSubmitter records submitted requests
type fakeSubmitter struct {
	project string
	req     export.Request
	calls   int
}

func (f *fakeSubmitter) Submit(ctx context.Context, project string, req export.Request) (*export.Operation, error) {
	f.calls++
	f.project = project
	f.req = req
	return &export.Operation{Name: fmt.Sprintf("projects/%s/operations/OP%d", project, f.calls)}, nil
}

// fakeBuckets reports only the configured buckets as existing
type fakeBuckets struct {
	existing map[string]bool
}

func (f *fakeBuckets) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.existing[bucket], nil
}

type exportContext struct {
	tempDir   string
	output    *bytes.Buffer
	err       error
	submitter *fakeSubmitter
	buckets   *fakeBuckets
}

var SharedExportContext = &exportContext{}

func InitializeExportScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedExportContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "export-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		testCtx.submitter = &fakeSubmitter{}
		testCtx.buckets = &fakeBuckets{existing: map[string]bool{}}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		SharedExportContext = &exportContext{}
		return c, nil
	})

	ctx.Step(`^a task file "([^"]*)" with:$`, testCtx.aTaskFileWith)
	ctx.Step(`^I convert "([^"]*)"$`, testCtx.iConvert)
	ctx.Step(`^I convert "([^"]*)" as "([^"]*)"$`, testCtx.iConvertAs)
	ctx.Step(`^the request field "([^"]*)" should be "([^"]*)"$`, testCtx.theRequestFieldShouldBe)

	ctx.Step(`^the bucket "([^"]*)" exists$`, testCtx.theBucketExists)
	ctx.Step(`^I submit "([^"]*)" to project "([^"]*)" answering "([^"]*)"$`, testCtx.iSubmitAnswering)
	ctx.Step(`^I submit "([^"]*)" to project "([^"]*)" with --yes$`, testCtx.iSubmitWithYes)
	ctx.Step(`^I submit "([^"]*)" to project "([^"]*)" with --yes --no-preflight$`, testCtx.iSubmitWithoutPreflight)
	ctx.Step(`^the export should have been submitted to "([^"]*)"$`, testCtx.theExportShouldHaveBeenSubmittedTo)
	ctx.Step(`^no export should have been submitted$`, testCtx.noExportShouldHaveBeenSubmitted)
	ctx.Step(`^the submitted field "([^"]*)" should be "([^"]*)"$`, testCtx.theSubmittedFieldShouldBe)
	ctx.Step(`^the submitted request should have a generated request id$`, testCtx.theSubmittedRequestShouldHaveAGeneratedRequestID)

	ctx.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, testCtx.theCommandShouldFailWith)
	ctx.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
}

func newConvertService() *appexport.ConvertService {
	converter := export.NewConverter(cloudapi.NewExpressionEncoder(), cloudapi.NewAssetNamer(), cloudapi.NewFormatMapper())
	return appexport.NewConvertService(converter, nil)
}

func (e *exportContext) aTaskFileWith(name string, content *godog.DocString) error {
	return os.WriteFile(filepath.Join(e.tempDir, name), []byte(content.Content), 0644)
}

func (e *exportContext) iConvert(name string) error {
	return e.iConvertAs(name, "")
}

func (e *exportContext) iConvertAs(name, kind string) error {
	e.err = cmd.RunConvertWithDependencies(
		context.Background(),
		newConvertService(),
		filepath.Join(e.tempDir, name),
		kind,
		strings.NewReader(""),
		e.output,
	)
	return nil
}

func (e *exportContext) theRequestFieldShouldBe(path, expected string) error {
	if e.err != nil {
		return fmt.Errorf("convert failed: %v", e.err)
	}
	var doc any
	if err := json.Unmarshal(e.output.Bytes(), &doc); err != nil {
		return fmt.Errorf("output is not JSON: %v\n%s", err, e.output.String())
	}
	return fieldShouldBe(doc, path, expected)
}

func (e *exportContext) theBucketExists(bucket string) error {
	e.buckets.existing[bucket] = true
	return nil
}

func (e *exportContext) submit(name, project string, prompter cmd.Prompter, yes, preflight bool) {
	svc := appexport.NewSubmitService(newConvertService(), e.submitter, e.buckets, nil, nil, e.output)
	e.err = cmd.RunSubmitWithDependencies(context.Background(), svc, prompter, cmd.SubmitInput{
		TaskPath:  filepath.Join(e.tempDir, name),
		Project:   project,
		Yes:       yes,
		Preflight: preflight,
	}, strings.NewReader(""), e.output)
}

func (e *exportContext) iSubmitAnswering(name, project, answer string) error {
	prompter := NewMockPrompter(nil, []bool{strings.ToLower(answer) == "y"})
	e.submit(name, project, prompter, false, true)
	return nil
}

func (e *exportContext) iSubmitWithYes(name, project string) error {
	e.submit(name, project, NewMockPrompter(nil, nil), true, true)
	return nil
}

func (e *exportContext) iSubmitWithoutPreflight(name, project string) error {
	e.submit(name, project, NewMockPrompter(nil, nil), true, false)
	return nil
}

func (e *exportContext) theExportShouldHaveBeenSubmittedTo(project string) error {
	if e.submitter.calls != 1 {
		return fmt.Errorf("expected 1 submission, got %d (err: %v)", e.submitter.calls, e.err)
	}
	if e.submitter.project != project {
		return fmt.Errorf("submitted to %q, want %q", e.submitter.project, project)
	}
	return nil
}

func (e *exportContext) noExportShouldHaveBeenSubmitted() error {
	if e.submitter.calls != 0 {
		return fmt.Errorf("expected no submission, got %d", e.submitter.calls)
	}
	return nil
}

func (e *exportContext) submittedDoc() (any, error) {
	if e.submitter.req == nil {
		return nil, fmt.Errorf("nothing was submitted")
	}
	b, err := json.Marshal(e.submitter.req)
	if err != nil {
		return nil, err
	}
	var doc any
	return doc, json.Unmarshal(b, &doc)
}

func (e *exportContext) theSubmittedFieldShouldBe(path, expected string) error {
	doc, err := e.submittedDoc()
	if err != nil {
		return err
	}
	return fieldShouldBe(doc, path, expected)
}

func (e *exportContext) theSubmittedRequestShouldHaveAGeneratedRequestID() error {
	doc, err := e.submittedDoc()
	if err != nil {
		return err
	}
	id, err := lookup(doc, "requestId")
	if err != nil {
		return err
	}
	s, ok := id.(string)
	if !ok || len(s) != 36 {
		return fmt.Errorf("expected a UUID request id, got %v", id)
	}
	return nil
}

func (e *exportContext) theCommandShouldSucceed() error {
	if e.err != nil {
		return fmt.Errorf("expected success, got error: %v", e.err)
	}
	return nil
}

func (e *exportContext) theCommandShouldFailWith(expected string) error {
	if e.err == nil {
		return fmt.Errorf("expected error containing %q, got success", expected)
	}
	if !strings.Contains(e.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, e.err.Error())
	}
	return nil
}

func (e *exportContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(e.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, e.output.String())
	}
	return nil
}

// fieldShouldBe compares a dotted path in a decoded JSON document against text
func fieldShouldBe(doc any, path, expected string) error {
	v, err := lookup(doc, path)
	if err != nil {
		return err
	}
	if got := render(v); got != expected {
		return fmt.Errorf("field %s = %s, want %s", path, got, expected)
	}
	return nil
}

func lookup(doc any, path string) (any, error) {
	cur := doc
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %s: no key %q", path, part)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("field %s: bad index %q", path, part)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %s: cannot descend into %v at %q", path, cur, part)
		}
	}
	return cur, nil
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	b, _ := json.Marshal(v)
	return string(b)
}
