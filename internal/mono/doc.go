// Package mono implements forced instantiation of generic Rust items.
//
// Two transforms share the same output form, a public anonymous constant
// whose initializer takes the address of a concrete instantiation and
// erases its type:
//
//	pub const _: *const () = (&foo::<i32, i64>) as *const _ as _;
//
// ExpandAttr handles `#[mono(T = i32, U = i64)]` on a fn item: the attribute
// arguments are parsed by ParseArgs and matched against the fn generic
// parameters by Instantiate. ExpandPath handles `mono!(<Foo as Tr<i32>>::foo)`:
// the path is validated by ParsePath and referenced as written.
//
// The package works on tokens produced by internal/lexer and does not touch
// files; placing the output in a source file is the job of internal/expand.
package mono
