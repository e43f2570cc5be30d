/*

Process of checking

Program Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	semantic ->
Valid Program or the first Diagnostic

Scopes

Function parameter and the top level of the function body share one scope.
Every other block, including if and while bodies, opens a new one.
Inner scopes may shadow outer names, redeclaration in the same scope is an error.

*/
package compiler
