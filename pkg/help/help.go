// Package help holds the text shown by `eva help`.
package help

import (
	"fmt"
	"strings"
)

// QUICKREF is printed by `eva help` with no topic.
const QUICKREF = `Eva v0.1 quick reference

  let x = 1, y;                 declare variables (y starts as null)
  x = x + 1;                    assign to the nearest binding
  def add(a, b) { return a + b; }
  lambda (x) x * x              anonymous function
  if (c) a; else b;   while (c) s;   do s; while (c);   for (init; test; update) s;
  switch (v) { case 1: a; default: b; }
  class P extends Base { def constructor(self, x) { self.x = x; } }
  new P(1)   super(P).constructor(self)   obj.prop
  module M { ... }   import M;   M.name
  print(a, b, ...)              write values separated by spaces

Commands: run, check, fmt, ast, repl, trace, config, help

Topics: syntax, values, classes, modules, errors, config
Run "eva help <topic>" for details. Topic names may be abbreviated.
`

var topicSyntax = `SYNTAX

Statements end with ';'. Blocks '{ ... }' open a new scope.

  let a = 1, b;                 b is null
  a = b = 2;                    assignment is right associative and yields the value
  if (a > 1) { ... } else { ... }
  while (test) body;
  do body; while (test);
  for (let i = 0; i < 3; i = i + 1) body;
  switch (x) { case 1: ...; case 2: ...; default: ...; }
  def name(p1, p2) { ... return value; }
  lambda (p) expression
  lambda (p) { statements }

Operators, loosest first:
  =   ||   &&   == !=   < > <= >=   + -   * /   unary + - !   call . []

Comments: // line and /* block */. The formatter drops them.
`

var topicValues = `VALUES

  number     64-bit signed integer; / rounds toward negative infinity
  string     "double" or 'single' quoted; escapes \n \t \r \0 \\ \" \'
  boolean    true, false
  null       the value of uninitialized variables and bare return
  function   def, lambda and native functions such as print
  env        classes, instances and modules

Conditions must be booleans. && and || evaluate both operands.
Arithmetic and comparison operators take numbers only.
== and != compare two numbers, two strings, two booleans or two nulls.
Any other pairing, including functions and envs, is an error.
`

var topicClasses = `CLASSES

  class Point {
    def constructor(self, x, y) { self.x = x; self.y = y; }
    def sum(self) { return self.x + self.y; }
  }
  class Point3 extends Point {
    def constructor(self, x, y, z) {
      super(Point3).constructor(self, x, y);
      self.z = z;
    }
  }
  let p = new Point3(1, 2, 3);
  p.sum(p);

Methods receive the instance explicitly as their first argument.
new creates an instance environment whose parent is the class and
calls the class's constructor (looked up through superclasses).
`

var topicModules = `MODULES

  module Math { def square(x) { return x * x; } }
  Math.square(4);

  import Util;          loads Util.eva from the module directory
  (import Util).name    import is an expression yielding the module

Imported files are validated like the entry file.
A module body runs once in its own environment. Imports bind the
module name in the global environment and re-run the file each time.
Module names may not contain path separators or "..".
`

var topicErrors = `ERRORS

Diagnostics print as JSON on stderr, or as text with --pretty.

  E_LEX, E_PARSE, E_EOF          source could not be read          exit 2
  E_RETURN_OUTSIDE_FUNCTION      return at top level or in a class exit 2
  E_DUP_PARAM, E_DUP_DEFAULT     repeated parameter or default     exit 2
  E_CONSTRUCTOR_SHAPE            constructor without parameters    eva check only
  E_VARIABLE_NOT_DEFINED         unknown name                      exit 4
  E_INVALID_OPERAND_TYPES        operator applied to wrong kinds   exit 4
  E_DIVISION_BY_ZERO             x / 0                             exit 4
  E_INVALID_OBJECT               property access on a non-env      exit 4
  E_COMPUTED_PROPERTY_ACCESS     obj[expr] is not supported        exit 4
  E_CLASS_NOT_AN_ENVIRONMENT     new, extends or super on non-class exit 4
  E_CONSTRUCTOR_NOT_FOUND        new on a class without one        exit 4
  E_ALLOCATION                   max_environments exceeded         exit 4
  E_IO                           unreadable file or module         exit 1 or 4
`

var topicConfig = `CONFIG

Eva reads eva.yaml in the working directory, else ~/.eva/config.yaml.

  module_dir: lib            where import looks for <Name>.eva
  return_mode: eager         eager or shallow
  max_environments: 10000    0 means unlimited
  trace: run.jsonl           write trace events as JSON lines
  history_file: ~/.eva_history

Command-line flags override the file. "eva config" prints the
effective configuration.
`

// Topics maps topic names to their help text.
var Topics = map[string]string{
	"syntax":  topicSyntax,
	"values":  topicValues,
	"classes": topicClasses,
	"modules": topicModules,
	"errors":  topicErrors,
	"config":  topicConfig,
}

// TopicList is the display order of Topics.
var TopicList = []string{"syntax", "values", "classes", "modules", "errors", "config"}

// MatchTopic finds a topic by exact name or unique prefix.
func MatchTopic(name string) (string, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", "", fmt.Errorf("no topic given")
	}
	if content, ok := Topics[name]; ok {
		return name, content, nil
	}
	var matches []string
	for _, t := range TopicList {
		if strings.HasPrefix(t, name) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("unknown help topic: %s", name)
	case 1:
		return matches[0], Topics[matches[0]], nil
	}
	return "", "", fmt.Errorf("ambiguous help topic %q matches %s", name, strings.Join(matches, ", "))
}
