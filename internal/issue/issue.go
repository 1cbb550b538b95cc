// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidCoverModeId
	ManifestParseErrorId
	DistDirOutsideRootId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your forge configuration file could not be loaded.

## Common causes:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields

## Things you can try:
- Validate the file against the schema shown by:
~~~
$ forge config show
~~~

- Recreate the default configuration:
~~~
$ forge config init
~~~`,
	}

	invalidCoverModeIssue = &Issue{
		id: InvalidCoverModeId,
		mdMsg: `
# Invalid cover mode!

The configured Go coverage mode is not recognized.

## Valid modes:
- ` + "`set`" + `: bool: does this statement run?
- ` + "`count`" + `: int: how many times does this statement run?
- ` + "`atomic`" + `: int: count, but correct in multithreaded tests; significantly more expensive

## Things you can try:
- Fix the 'gotest.cover_mode' value in your config file:
~~~cue
gotest: {
  cover_mode: "set"
}
~~~

- See mode trade-offs:
~~~
$ forge test-config explain
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse target manifest!

A forge.toml file contains syntax errors or unknown fields.

## Example manifest:
~~~toml
[test]
race = true
msan = false
~~~

## Things you can try:
- Check the TOML syntax of the file named above
- Remove unknown keys; only 'race', 'msan' and 'asan' are recognized under [test]`,
	}

	distDirOutsideRootIssue = &Issue{
		id: DistDirOutsideRootId,
		mdMsg: `
# Dist directory outside the build root!

The configured dist directory must live inside the build root so that
coverage reports and other outputs stay within the workspace.

## Things you can try:
- Use a relative path such as 'dist' or 'out/dist'
- If you pass an absolute path, make sure it is under the build root`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		invalidCoverModeIssue.Id():   invalidCoverModeIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		distDirOutsideRootIssue.Id(): distDirOutsideRootIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
