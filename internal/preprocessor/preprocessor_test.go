package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slaide/pacc-sub000/internal/source"
)

func runSource(t *testing.T, contents string) []string {
	t.Helper()
	p := New(source.NewRealLoader())
	toks, err := p.Run(source.FromString("t.c", contents))
	require.NoError(t, err)
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestIfTrueEmitsBody(t *testing.T) {
	out := runSource(t, "#if 1\nint x;\n#endif\n")
	require.Equal(t, []string{"int", "x", ";"}, out)
}

func TestIfFalseSkipsBody(t *testing.T) {
	out := runSource(t, "#if 0\nint x;\n#endif\nint y;\n")
	require.Equal(t, []string{"int", "y", ";"}, out)
}

func TestIfElseTakesElseBranch(t *testing.T) {
	out := runSource(t, "#if 0\nint a;\n#else\nint b;\n#endif\n")
	require.Equal(t, []string{"int", "b", ";"}, out)
}

func TestElifChainsTakeFirstTrueOnly(t *testing.T) {
	out := runSource(t, "#if 0\na;\n#elif 1\nb;\n#elif 1\nc;\n#else\nd;\n#endif\n")
	require.Equal(t, []string{"b", ";"}, out)
}

func TestDefinedOperator(t *testing.T) {
	out := runSource(t, "#define FOO\n#if defined(FOO)\nyes;\n#endif\n#if defined BAR\nno;\n#endif\n")
	require.Equal(t, []string{"yes", ";"}, out)
}

func TestIfdefIfndef(t *testing.T) {
	out := runSource(t, "#define FOO\n#ifdef FOO\na;\n#endif\n#ifndef FOO\nb;\n#endif\n#ifndef BAR\nc;\n#endif\n")
	require.Equal(t, []string{"a", ";", "c", ";"}, out)
}

func TestNestedIfRespectsOuterSkip(t *testing.T) {
	out := runSource(t, "#if 0\n#if 1\na;\n#endif\n#endif\nb;\n")
	require.Equal(t, []string{"b", ";"}, out)
}

func TestLogicalAndOrShortCircuit(t *testing.T) {
	out := runSource(t, "#if 1 || 0\na;\n#endif\n#if 0 && 1\nb;\n#endif\n")
	require.Equal(t, []string{"a", ";"}, out)
}

func TestRelationalAndArithmetic(t *testing.T) {
	out := runSource(t, "#if 1 + 2 * 3 == 7\na;\n#endif\n#if 2 > 1\nb;\n#endif\n")
	require.Equal(t, []string{"a", ";", "b", ";"}, out)
}

func TestTernaryExpression(t *testing.T) {
	out := runSource(t, "#if 1 ? 1 : 0\na;\n#endif\n#if 0 ? 1 : 0\nb;\n#endif\n")
	require.Equal(t, []string{"a", ";"}, out)
}

func TestUndefDeactivatesDefine(t *testing.T) {
	out := runSource(t, "#define FOO\n#undef FOO\n#ifdef FOO\na;\n#endif\nb;\n")
	require.Equal(t, []string{"b", ";"}, out)
}

func TestUnmatchedEndifIsFatal(t *testing.T) {
	p := New(source.NewRealLoader())
	_, err := p.Run(source.FromString("t.c", "#endif\n"))
	require.Error(t, err)
}

func TestUnknownDirectiveIsFatal(t *testing.T) {
	p := New(source.NewRealLoader())
	_, err := p.Run(source.FromString("t.c", "#bogus\n"))
	require.Error(t, err)
}

func TestUnknownPragmaIsFatal(t *testing.T) {
	p := New(source.NewRealLoader())
	_, err := p.Run(source.FromString("t.c", "#pragma weird\n"))
	require.Error(t, err)
}

func TestPredefineViaCommandLine(t *testing.T) {
	p := New(source.NewRealLoader())
	p.Predefine("FEATURE")
	toks, err := p.Run(source.FromString("t.c", "#ifdef FEATURE\nyes;\n#endif\n"))
	require.NoError(t, err)
	got := make([]string, len(toks))
	for i, tok := range toks {
		got[i] = tok.Text
	}
	require.Equal(t, []string{"yes", ";"}, got)
}
